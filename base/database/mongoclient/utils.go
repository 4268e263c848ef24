package mongoclient

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
)

// MakeBsonM turns a filter or patch struct into a bson.M keyed by bson tag names.
// Zero fields are dropped, set pointers are dereferenced and inline structs are flattened,
// so a pointer to an empty value still ends up in the result.
func MakeBsonM(patchable interface{}) (bson.M, error) {
	val := reflect.ValueOf(patchable)
	if val.Kind() == reflect.Ptr && val.Elem().Kind() == reflect.Struct {
		val = val.Elem()
	}

	bsonM := bson.M{}
	if err := appendFields(bsonM, val); err != nil {
		return nil, err
	}
	return bsonM, nil
}

func appendFields(bsonM bson.M, val reflect.Value) error {
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		sf := val.Type().Field(i)

		tag, err := bsoncodec.DefaultStructTagParser(sf)
		switch {
		case err != nil:
			return err
		case tag.Skip, !field.CanInterface():
			continue
		case tag.Inline && field.Kind() == reflect.Struct:
			if err := appendFields(bsonM, field); err != nil {
				return err
			}
		case field.Kind() == reflect.Ptr && !field.IsNil():
			bsonM[tag.Name] = field.Elem().Interface()
		case !field.IsZero():
			bsonM[tag.Name] = field.Interface()
		}
	}
	return nil
}
