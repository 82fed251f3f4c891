package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/sports-dw/internal/domain/dimension"
	"github.com/riskibarqy/sports-dw/internal/domain/fact"
	"github.com/riskibarqy/sports-dw/internal/domain/warehouse"
	"github.com/riskibarqy/sports-dw/internal/platform/document"
)

type RaceClassification struct {
	Driver   dimension.Driver
	Team     dimension.F1Team
	Circuit  dimension.Circuit
	Race     dimension.Race
	Position *int64
	Points   *decimal.Decimal
	Laps     *int64
	Time     *string
	Status   *string
}

type Formula1Mapper struct{}

func (Formula1Mapper) Sport() Sport { return SportFormula1 }

// Extract accepts both the api-formula-1 shape (nested race/driver/team
// objects) and the Ergast-like flat shape (raceId, driverId, constructorId).
func (Formula1Mapper) Extract(doc document.Value) RaceClassification {
	circuitLength, _ := measureField(doc.Get("circuit", "length"), "km", "kms")

	out := RaceClassification{
		Driver: dimension.Driver{
			APIDriverID: firstKey(
				doc.Get("driver", "id"),
				doc.Get("driverId"),
				doc.Get("driver", "driverId"),
				doc.Get("driver", "api_id"),
			),
			Name:        textField(doc.Get("driver", "name")),
			Nationality: textField(doc.Get("driver", "nationality")),
			Number:      intField(doc.Get("driver", "number")),
		},
		Team: dimension.F1Team{
			APITeamID: firstKey(doc.Get("team", "id"), doc.Get("constructorId"), doc.Get("teamId")),
			Name:      textField(doc.Get("team", "name")),
		},
		Circuit: dimension.Circuit{
			APICircuitID: firstKey(doc.Get("circuit", "id"), doc.Get("circuitId")),
			Name:         textField(doc.Get("circuit", "name")),
			Location:     textField(doc.Get("circuit", "location")),
			Country:      textField(doc.Get("circuit", "country")),
			LengthKM:     circuitLength,
		},
		Race: dimension.Race{
			APIRaceID: firstKey(doc.Get("race", "id"), doc.Get("raceId"), doc.Get("race_id")),
			Season:    intField(document.FirstPresent(doc.Get("season"), doc.Get("year"))),
			Round:     intField(document.FirstPresent(doc.Get("race", "round"), doc.Get("round"))),
			Name:      textField(document.FirstPresent(doc.Get("race", "name"), doc.Get("raceName"))),
			Date:      dateField(document.FirstPresent(doc.Get("race", "date"), doc.Get("date"))),
		},
		Position: intField(resultField(doc, "position")),
		Points:   decimalField(resultField(doc, "points")),
		Laps:     intField(resultField(doc, "laps")),
		Status:   textField(resultField(doc, "status")),
	}

	raceTime := resultField(doc, "time")
	if raceTime.IsMap() {
		raceTime = raceTime.Get("time")
	}
	out.Time = textField(raceTime)

	return out
}

// resultField reads a measure from the top level, else from result.
func resultField(doc document.Value, key string) document.Value {
	return doc.GetOr(doc.Get("result", key), key)
}

func (m Formula1Mapper) Load(ctx context.Context, store warehouse.Store, doc document.Value) error {
	in := m.Extract(doc)

	driverID, err := store.UpsertDriver(ctx, in.Driver)
	if err != nil {
		return err
	}
	teamID, err := store.UpsertF1Team(ctx, in.Team)
	if err != nil {
		return err
	}
	circuitID, err := store.UpsertCircuit(ctx, in.Circuit)
	if err != nil {
		return err
	}
	raceID, err := store.UpsertRace(ctx, in.Race)
	if err != nil {
		return err
	}
	timeKey, err := store.UpsertTime(ctx, in.Race.Date)
	if err != nil {
		return err
	}

	_, err = store.InsertRaceResult(ctx, fact.RaceResult{
		DriverID:  driverID,
		TeamID:    teamID,
		RaceID:    raceID,
		CircuitID: circuitID,
		TimeKey:   timeKey,
		Position:  in.Position,
		Points:    in.Points,
		Laps:      in.Laps,
		Time:      in.Time,
		Status:    in.Status,
	})
	return err
}
