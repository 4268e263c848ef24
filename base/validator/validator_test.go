package validator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/mazad/goapi/domain"
)

type media struct {
	Url  string `validate:"required,max=2048"`
	Type string `validate:"required,mediatype"`
}

type priced struct {
	Slug         string           `validate:"omitempty,slug"`
	StartPrice   *decimal.Decimal `validate:"omitempty,decgte0"`
	BidIncrement *decimal.Decimal `validate:"omitempty,decgt0"`
	Amount       decimal.Decimal  `validate:"decgt0"`
}

type ValidatorTestSuite struct {
	suite.Suite
	v *CustomValidator
}

func (s *ValidatorTestSuite) SetupTest() {
	s.v = NewCustomValidator(New()).(*CustomValidator)
}

func (s *ValidatorTestSuite) TestMediaType() {
	tests := []struct {
		desc  string
		input media
		valid bool
	}{
		{"jpeg", media{"https://cdn/x.jpg", "image/jpeg"}, true},
		{"mp4 upper case", media{"https://cdn/x.mp4", "VIDEO/MP4"}, true},
		{"unknown", media{"https://cdn/x", "application/x-nope"}, false},
		{"missing url", media{"", "image/png"}, false},
	}
	for _, t := range tests {
		err := s.v.Validate(t.input)
		if t.valid {
			s.NoError(err, t.desc)
		} else {
			s.Error(err, t.desc)
			s.True(errors.Is(err, domain.ErrBadParamInput), t.desc)
		}
	}
}

func (s *ValidatorTestSuite) TestDecimals() {
	neg := decimal.NewFromInt(-1)
	zero := decimal.Zero

	s.NoError(s.v.Validate(priced{Amount: decimal.NewFromInt(5)}))
	s.Error(s.v.Validate(priced{Amount: zero}))
	s.Error(s.v.Validate(priced{Amount: decimal.NewFromInt(1), StartPrice: &neg}))
	s.NoError(s.v.Validate(priced{Amount: decimal.NewFromInt(1), StartPrice: &zero}))
	s.Error(s.v.Validate(priced{Amount: decimal.NewFromInt(1), BidIncrement: &zero}))
}

func (s *ValidatorTestSuite) TestDecimalPrecision() {
	fits := decimal.RequireFromString("1234567890123456789012345678901234")
	tooLong := decimal.RequireFromString("12345678901234567890123456789012345")
	tiny := decimal.RequireFromString("0.000001")
	longFraction := decimal.RequireFromString("1.2345678901234567890123456789012345")

	s.NoError(s.v.Validate(priced{Amount: fits}))
	s.NoError(s.v.Validate(priced{Amount: tiny}))
	err := s.v.Validate(priced{Amount: tooLong})
	s.True(errors.Is(err, domain.ErrBadParamInput))
	s.EqualError(err, "Given Param is not valid: amount failed on decgt0")
	s.Error(s.v.Validate(priced{Amount: longFraction}))
	s.Error(s.v.Validate(priced{Amount: decimal.NewFromInt(1), StartPrice: &tooLong}))
}

func (s *ValidatorTestSuite) TestSlug() {
	s.NoError(s.v.Validate(priced{Amount: decimal.NewFromInt(1), Slug: "suv-4x4"}))
	err := s.v.Validate(priced{Amount: decimal.NewFromInt(1), Slug: "SUV 4x4"})
	s.EqualError(err, "Given Param is not valid: slug failed on slug")
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}
