package util

import (
	"encoding/json"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JSONF renders v for log lines. Errors yield an empty string.
func JSONF(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

var objectIDConverter = copier.TypeConverter{
	SrcType: primitive.ObjectID{},
	DstType: copier.String,
	Fn: func(src any) (any, error) {
		return src.(primitive.ObjectID).Hex(), nil
	},
}

// Copy deep copies src into dst, rendering object ids as hex strings.
func Copy(dst, src any) error {
	return copier.CopyWithOption(dst, src, copier.Option{
		DeepCopy:   true,
		Converters: []copier.TypeConverter{objectIDConverter},
	})
}
