package mongoclient

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

type priced struct {
	Price   decimal.Decimal  `bson:"price"`
	Reserve *decimal.Decimal `bson:"reserve,omitempty"`
}

func TestDecimalCodec(t *testing.T) {
	req := require.New(t)
	reserve := decimal.RequireFromString("999.99")
	in := priced{Price: decimal.RequireFromString("1050.50"), Reserve: &reserve}

	raw, err := bson.MarshalWithRegistry(Registry, in)
	req.NoError(err)
	req.Equal(bsontype.Decimal128, bson.Raw(raw).Lookup("price").Type)

	var out priced
	req.NoError(bson.UnmarshalWithRegistry(Registry, raw, &out))
	req.True(in.Price.Equal(out.Price))
	req.True(reserve.Equal(*out.Reserve))

	raw, err = bson.MarshalWithRegistry(Registry, priced{Price: decimal.NewFromInt(7)})
	req.NoError(err)
	out = priced{}
	req.NoError(bson.UnmarshalWithRegistry(Registry, raw, &out))
	req.Nil(out.Reserve)
}

func TestDecimalDecodeLegacyTypes(t *testing.T) {
	req := require.New(t)
	docs := []bson.M{
		{"price": "12.5"},
		{"price": 12.5},
		{"price": int32(12)},
		{"price": int64(12)},
	}
	wants := []string{"12.5", "12.5", "12", "12"}
	for i, doc := range docs {
		raw, err := bson.Marshal(doc)
		req.NoError(err)
		var out priced
		req.NoError(bson.UnmarshalWithRegistry(Registry, raw, &out))
		req.True(decimal.RequireFromString(wants[i]).Equal(out.Price), wants[i])
	}

	raw, err := bson.Marshal(bson.M{"price": true})
	req.NoError(err)
	req.Error(bson.UnmarshalWithRegistry(Registry, raw, &priced{}))
}
