package mongoclient

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mazad/goapi/base/log"
	"github.com/mazad/goapi/domain"
)

// Index describes one index of a collection
type Index struct {
	Collection string
	Keys       bson.D
	Unique     bool
}

// EnsureIndexes creates the given indexes, existing identical indexes are left alone
func EnsureIndexes(ctx context.Context, client *Client, indexes []Index) error {
	db := client.Database(client.DbName)
	for _, idx := range indexes {
		model := mongo.IndexModel{Keys: idx.Keys}
		if idx.Unique {
			model.Options = options.Index().SetUnique(true)
		}
		name, err := db.Collection(idx.Collection).Indexes().CreateOne(ctx, model)
		if err != nil {
			log.Log().WithFields(log.Fields{
				"collection": idx.Collection,
				"keys":       idx.Keys,
				"err":        err,
			}).Error("fail to create index")
			return err
		}
		log.Log().WithFields(log.Fields{
			"collection": idx.Collection,
			"index":      name,
		}).Info("index ensured")
	}
	return nil
}

func coll(table domain.Table) string {
	return string(table)
}

// Indexes is the full index set of the marketplace collections
var Indexes = []Index{
	{Collection: coll(domain.TableListings), Keys: bson.D{{Key: "slug", Value: 1}}, Unique: true},
	{Collection: coll(domain.TableListings), Keys: bson.D{{Key: "status", Value: 1}, {Key: "endAt", Value: 1}}},
	{Collection: coll(domain.TableListings), Keys: bson.D{{Key: "sellerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	{Collection: coll(domain.TableListings), Keys: bson.D{{Key: "status", Value: 1}, {Key: "categoryId", Value: 1}, {Key: "createdAt", Value: -1}}},
	{Collection: coll(domain.TableListings), Keys: bson.D{{Key: "status", Value: 1}, {Key: "sortPrice", Value: 1}}},

	{Collection: coll(domain.TableBids), Keys: bson.D{{Key: "listingId", Value: 1}, {Key: "status", Value: 1}, {Key: "amount", Value: -1}}},
	{Collection: coll(domain.TableBids), Keys: bson.D{{Key: "listingId", Value: 1}, {Key: "placedAt", Value: -1}}},
	{Collection: coll(domain.TableBids), Keys: bson.D{{Key: "bidderId", Value: 1}, {Key: "placedAt", Value: -1}}},

	{Collection: coll(domain.TableOrders), Keys: bson.D{{Key: "listingId", Value: 1}, {Key: "status", Value: 1}}},
	{Collection: coll(domain.TableOrders), Keys: bson.D{{Key: "buyerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	{Collection: coll(domain.TableOrders), Keys: bson.D{{Key: "sellerId", Value: 1}, {Key: "createdAt", Value: -1}}},

	{Collection: coll(domain.TableWatchlists), Keys: bson.D{{Key: "userId", Value: 1}, {Key: "listingId", Value: 1}}, Unique: true},
	{Collection: coll(domain.TableWatchlists), Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},

	{Collection: coll(domain.TableCategories), Keys: bson.D{{Key: "slug", Value: 1}}, Unique: true},

	{Collection: coll(domain.TableAuditLogs), Keys: bson.D{{Key: "area", Value: 1}, {Key: "createdAt", Value: -1}}},
	{Collection: coll(domain.TableAuditLogs), Keys: bson.D{{Key: "actorId", Value: 1}, {Key: "createdAt", Value: -1}}},
	{Collection: coll(domain.TableAuditLogs), Keys: bson.D{{Key: "entityId", Value: 1}, {Key: "createdAt", Value: -1}}},
}
