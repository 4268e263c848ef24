package mongoclient

import (
	"context"
	"crypto/tls"
	"errors"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/mazad/goapi/base/log"
)

const mgSocketTimeout = 60 * time.Second

// Client wraps mongo.Client
type Client struct {
	DbName string
	*mongo.Client
}

// Config of the marketplace database. Bids and purchases run in multi-document
// transactions, so RequireReplicaSet refuses a standalone server.
type Config struct {
	URI            string
	AuthDBName     string
	DBName         string
	SSL            bool
	PoolMultiplier float64

	RequireReplicaSet bool
}

var ErrNoReplicaSet = errors.New("mongo: transactions need a replica set")

// MustConnectMongoClient returns MongoDB connection client if connected successfully, or it will trigger panic
func MustConnectMongoClient(cfg Config) *Client {
	cli, err := ConnectMongoClient(cfg)
	if err != nil {
		log.Log().WithFields(log.Fields{"mongoURI": cfg.URI, "err": err}).Panic("fail to dial Mongo")
	}
	return cli
}

// ConnectMongoClient connects with majority write concern and retryable writes
func ConnectMongoClient(cfg Config) (*Client, error) {
	ctx := context.Background()
	connSetting, err := connstring.Parse(cfg.URI)
	if err != nil {
		log.Log().WithFields(log.Fields{
			"dbName": cfg.DBName,
			"err":    err,
		}).Error("fail to parse connstring")
		return nil, err
	}
	fields := log.Fields{
		"mongoHosts": connSetting.Hosts,
		"dbName":     cfg.DBName,
	}

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetSocketTimeout(mgSocketTimeout).
		SetRegistry(Registry).
		SetWriteConcern(writeconcern.New(writeconcern.WMajority())).
		SetReadConcern(readconcern.Majority()).
		SetRetryWrites(true)

	if connSetting.Username != "" && connSetting.AuthSource == "" {
		clientOpts.SetAuth(options.Credential{
			AuthMechanism:           connSetting.AuthMechanism,
			AuthMechanismProperties: connSetting.AuthMechanismProperties,
			Username:                connSetting.Username,
			Password:                connSetting.Password,
			PasswordSet:             connSetting.PasswordSet,
			AuthSource:              cfg.AuthDBName,
		})
	}

	multiplier := cfg.PoolMultiplier
	if multiplier <= 0 {
		multiplier = 1
	}
	// the budget is split across hosts, each host keeps its own pool
	poolSize := int(float64(runtime.NumCPU()) * multiplier)
	poolSize = (poolSize + len(connSetting.Hosts) - 1) / len(connSetting.Hosts)
	clientOpts.SetMinPoolSize(uint64(poolSize / 4))
	clientOpts.SetMaxPoolSize(uint64(poolSize))

	if cfg.SSL {
		clientOpts.SetTLSConfig(&tls.Config{})
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		log.Log().WithFields(fields).WithField("err", err).Error("fail to connect mongo db")
		return nil, err
	}

	hello := bson.M{}
	if err := client.Database(cfg.DBName).RunCommand(ctx, bson.D{{Key: "isMaster", Value: 1}}).Decode(&hello); err != nil {
		log.Log().WithFields(fields).WithField("err", err).Error("fail to test mongo db")
		return nil, err
	}
	if _, ok := hello["setName"]; !ok && cfg.RequireReplicaSet {
		log.Log().WithFields(fields).Error("mongo is not a replica set")
		return nil, ErrNoReplicaSet
	}

	log.Log().WithFields(fields).WithField("poolSize", poolSize).Info("mongo connected")
	return &Client{
		Client: client,
		DbName: cfg.DBName,
	}, nil
}
