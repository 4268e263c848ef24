package domain

import (
	"strings"

	"github.com/google/uuid"
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// UserId is the identity subsystem's user identifier
type UserId string

// SystemUserId stamps changes made by platform jobs
const SystemUserId = UserId("system")

func (u UserId) String() string {
	return string(u)
}

func (u UserId) IsEmpty() bool {
	return len(strings.TrimSpace(string(u))) == 0
}

// Actor is the caller of a command as resolved by the auth middleware
type Actor struct {
	Id      UserId `json:"id"`
	IsAdmin bool   `json:"isAdmin"`
}

func SystemActor() Actor {
	return Actor{Id: SystemUserId, IsAdmin: true}
}

// NewId returns a random identifier for a new document
func NewId() string {
	return uuid.NewString()
}

// IsValidId reports whether s looks like an id produced by NewId
func IsValidId(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Paging normalizes page and pageSize and returns the mongo offset/limit pair
func Paging(page, pageSize int) (normPage, normSize, offset int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize, (page - 1) * pageSize
}

// Page is one page of a paged read
type Page struct {
	Items    interface{} `json:"items"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
	Total    int         `json:"total"`
}
