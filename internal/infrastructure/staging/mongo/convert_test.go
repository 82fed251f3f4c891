package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/riskibarqy/sports-dw/internal/platform/document"
)

func TestFromBSON(t *testing.T) {
	oid := primitive.NewObjectID()
	kickoff := time.Date(2023, 8, 12, 15, 0, 0, 0, time.UTC)
	capacity, err := primitive.ParseDecimal128("74310")
	require.NoError(t, err)
	length, err := primitive.ParseDecimal128("5.412")
	require.NoError(t, err)

	raw := bson.D{
		{Key: "_id", Value: oid},
		{Key: "fixture", Value: bson.D{
			{Key: "id", Value: int32(101)},
			{Key: "date", Value: primitive.NewDateTimeFromTime(kickoff)},
			{Key: "referee", Value: nil},
			{Key: "venue", Value: bson.M{"capacity": capacity}},
		}},
		{Key: "circuit", Value: bson.D{{Key: "length", Value: length}}},
		{Key: "players", Value: bson.A{bson.D{{Key: "player", Value: bson.D{{Key: "id", Value: int64(265)}}}}}},
		{Key: "live", Value: false},
	}

	got := fromBSON(raw)

	assert.Equal(t, oid.Hex(), mustText(t, got.Get("_id")))
	matchID, ok := got.Get("fixture", "id").Int()
	require.True(t, ok)
	assert.Equal(t, int64(101), matchID)

	date, ok := got.Get("fixture", "date").Time()
	require.True(t, ok)
	assert.True(t, date.Equal(kickoff))

	_, present := got.Lookup("fixture", "referee")
	assert.False(t, present)

	venueCapacity, ok := got.Get("fixture", "venue", "capacity").Int()
	require.True(t, ok)
	assert.Equal(t, int64(74310), venueCapacity)

	circuitLength, ok := got.Get("circuit", "length").Decimal()
	require.True(t, ok)
	assert.Equal(t, "5.412", circuitLength.String())

	players, ok := got.Get("players").Items()
	require.True(t, ok)
	require.Len(t, players, 1)
	playerID, _ := players[0].Get("player", "id").Int()
	assert.Equal(t, int64(265), playerID)

	assert.Equal(t, document.KindBool, got.Get("live").Kind())
	assert.Equal(t, false, got.Get("live").Any())

	assert.Equal(t, oid.Hex(), documentID(raw))
}

func TestToBSON(t *testing.T) {
	doc, err := document.Parse([]byte(`{"fixture":{"id":1,"teams":["a","b"]},"goals":null}`))
	require.NoError(t, err)

	out, ok := toBSON(doc).(bson.M)
	require.True(t, ok)

	fixture, ok := out["fixture"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, int64(1), fixture["id"])
	assert.Equal(t, bson.A{"a", "b"}, fixture["teams"])
	assert.Nil(t, out["goals"])

	encoded, err := bson.Marshal(out)
	require.NoError(t, err)

	var decoded bson.D
	require.NoError(t, bson.Unmarshal(encoded, &decoded))
	roundTrip := fromBSON(decoded)
	id, _ := roundTrip.Get("fixture", "id").Int()
	assert.Equal(t, int64(1), id)
}

func mustText(t *testing.T, v document.Value) string {
	t.Helper()
	out, ok := v.Text()
	if !ok {
		t.Fatalf("expected text value, got %s", v.Kind())
	}
	return out
}
