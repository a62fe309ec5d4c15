package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainreservation "github.com/CristhianAlv-ing/HotelFind/internal/domain/reservation"
)

// ReservationRepository persists reservations per user in the backing
// service's database. It mirrors the in-memory contract: idempotent add,
// no-op remove on absent ids, update that never inserts.
type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection("reservations")}
}

func (r *ReservationRepository) Add(ctx context.Context, res *domainreservation.Reservation) error {
	doc := newReservationDocument(res)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$setOnInsert": doc}
	opts := options.Update().SetUpsert(true)
	// duplicate ids leave the stored document untouched
	_, err := r.col.UpdateOne(ctx, filter, update, opts)
	return err
}

func (r *ReservationRepository) Remove(ctx context.Context, userID, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	return err
}

func (r *ReservationRepository) Update(ctx context.Context, res *domainreservation.Reservation) error {
	doc := newReservationDocument(res)
	filter := bson.M{"_id": doc.ID, "user_id": doc.UserID}
	_, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc})
	return err
}

func (r *ReservationRepository) ByID(ctx context.Context, userID, id string) (*domainreservation.Reservation, error) {
	var doc reservationDocument
	err := r.col.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainreservation.ErrNotFound
		}
		return nil, err
	}
	return doc.toRecord(), nil
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID string) ([]*domainreservation.Reservation, error) {
	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainreservation.Reservation
	for cursor.Next(ctx) {
		var doc reservationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toRecord())
	}
	return out, cursor.Err()
}

type reservationDocument struct {
	ID               string  `bson:"_id"`
	UserID           string  `bson:"user_id"`
	HotelName        string  `bson:"hotel_name"`
	PlaceID          string  `bson:"place_id,omitempty"`
	Date             int64   `bson:"date"`
	CheckIn          int64   `bson:"check_in"`
	CheckOut         int64   `bson:"check_out"`
	Nights           int     `bson:"nights"`
	Guests           int     `bson:"guests"`
	UserName         string  `bson:"user_name,omitempty"`
	PhoneNumber      string  `bson:"phone_number,omitempty"`
	Notes            string  `bson:"notes,omitempty"`
	RoomType         string  `bson:"room_type,omitempty"`
	RoomCapacity     int     `bson:"room_capacity,omitempty"`
	PricePerNight    float64 `bson:"price_per_night,omitempty"`
	TotalPrice       float64 `bson:"total_price,omitempty"`
	AdjustmentType   string  `bson:"adjustment_type,omitempty"`
	AdjustmentAmount float64 `bson:"adjustment_amount,omitempty"`
	CreatedAt        int64   `bson:"created_at"`
}

func newReservationDocument(res *domainreservation.Reservation) reservationDocument {
	return reservationDocument{
		ID:               res.ID,
		UserID:           res.UserID,
		HotelName:        res.HotelName,
		PlaceID:          res.PlaceID,
		Date:             timeToMillis(res.Date),
		CheckIn:          timeToMillis(res.CheckIn),
		CheckOut:         timeToMillis(res.CheckOut),
		Nights:           res.Nights,
		Guests:           res.Guests,
		UserName:         res.UserName,
		PhoneNumber:      res.PhoneNumber,
		Notes:            res.Notes,
		RoomType:         res.RoomType,
		RoomCapacity:     res.RoomCapacity,
		PricePerNight:    res.PricePerNight,
		TotalPrice:       res.TotalPrice,
		AdjustmentType:   string(res.AdjustmentType),
		AdjustmentAmount: res.AdjustmentAmount,
		CreatedAt:        timeToMillis(res.CreatedAt),
	}
}

func (d reservationDocument) toRecord() *domainreservation.Reservation {
	return &domainreservation.Reservation{
		ID:               d.ID,
		UserID:           d.UserID,
		HotelName:        d.HotelName,
		PlaceID:          d.PlaceID,
		Date:             millisToTime(d.Date),
		CheckIn:          millisToTime(d.CheckIn),
		CheckOut:         millisToTime(d.CheckOut),
		Nights:           d.Nights,
		Guests:           d.Guests,
		UserName:         d.UserName,
		PhoneNumber:      d.PhoneNumber,
		Notes:            d.Notes,
		RoomType:         d.RoomType,
		RoomCapacity:     d.RoomCapacity,
		PricePerNight:    d.PricePerNight,
		TotalPrice:       d.TotalPrice,
		AdjustmentType:   domainreservation.AdjustmentType(d.AdjustmentType),
		AdjustmentAmount: d.AdjustmentAmount,
		CreatedAt:        millisToTime(d.CreatedAt),
	}
}

func timeToMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func millisToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

var _ domainreservation.Repository = (*ReservationRepository)(nil)
