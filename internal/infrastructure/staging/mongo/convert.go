package mongo

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/riskibarqy/sports-dw/internal/platform/document"
)

// fromBSON converts a decoded BSON value into a document value. ObjectIDs
// become their hex string and Decimal128 becomes a float when it fits,
// else its string form.
func fromBSON(raw any) document.Value {
	switch v := raw.(type) {
	case nil, primitive.Null, primitive.Undefined:
		return document.Null()
	case bson.D:
		fields := make(map[string]document.Value, len(v))
		for _, elem := range v {
			fields[elem.Key] = fromBSON(elem.Value)
		}
		return document.Map(fields)
	case bson.M:
		fields := make(map[string]document.Value, len(v))
		for key, value := range v {
			fields[key] = fromBSON(value)
		}
		return document.Map(fields)
	case map[string]any:
		return fromBSON(bson.M(v))
	case bson.A:
		items := make([]document.Value, 0, len(v))
		for _, item := range v {
			items = append(items, fromBSON(item))
		}
		return document.List(items...)
	case []any:
		return fromBSON(bson.A(v))
	case primitive.ObjectID:
		return document.String(v.Hex())
	case primitive.DateTime:
		return document.Time(v.Time().UTC())
	case primitive.Timestamp:
		return document.Time(time.Unix(int64(v.T), 0).UTC())
	case primitive.Decimal128:
		parsed, err := decimal.NewFromString(v.String())
		if err != nil {
			return document.String(v.String())
		}
		if parsed.IsInteger() && parsed.Abs().LessThan(decimal.NewFromInt(1<<53)) {
			return document.Int(parsed.IntPart())
		}
		if f, exact := parsed.Float64(); exact {
			return document.Float(f)
		}
		return document.String(v.String())
	case int32:
		return document.Int(int64(v))
	case int64:
		return document.Int(v)
	case float64:
		return document.Float(v)
	case string:
		return document.String(v)
	case bool:
		return document.Bool(v)
	case time.Time:
		return document.Time(v.UTC())
	default:
		return document.FromAny(v)
	}
}

// toBSON converts a document value into something the driver can encode.
// Map field order is not preserved.
func toBSON(v document.Value) any {
	switch v.Kind() {
	case document.KindMap:
		fields, _ := v.Fields()
		out := make(bson.M, len(fields))
		for key, value := range fields {
			out[key] = toBSON(value)
		}
		return out
	case document.KindList:
		items, _ := v.Items()
		out := make(bson.A, 0, len(items))
		for _, item := range items {
			out = append(out, toBSON(item))
		}
		return out
	default:
		return v.Any()
	}
}
