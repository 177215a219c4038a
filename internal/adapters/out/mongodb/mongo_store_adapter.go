package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/staff-roster-scheduler/internal/config"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/out"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	CollectionShifts       = "shifts"
	CollectionRooms        = "rooms"
	CollectionStaff        = "staff"
	CollectionAppointments = "appointments"
)

var _ out.StorePort = (*MongoStoreAdapter)(nil)

type MongoStoreAdapter struct {
	client       *mongo.Client
	shifts       *mongo.Collection
	rooms        *mongo.Collection
	staff        *mongo.Collection
	appointments *mongo.Collection
	logger       out.LoggerPort
}

func NewMongoStoreAdapter(ctx context.Context, cfg *config.Config, logger out.LoggerPort) (*MongoStoreAdapter, error) {
	logger = logger.WithModule("MongoStoreAdapter")

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(cfg.Mongo.Database)
	adapter := &MongoStoreAdapter{
		client:       client,
		shifts:       db.Collection(CollectionShifts),
		rooms:        db.Collection(CollectionRooms),
		staff:        db.Collection(CollectionStaff),
		appointments: db.Collection(CollectionAppointments),
		logger:       logger,
	}

	if err := adapter.ensureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.Info("mongo.connected", out.LogFields{
		"database": cfg.Mongo.Database,
	})

	return adapter, nil
}

func (a *MongoStoreAdapter) ensureIndexes(ctx context.Context) error {
	if _, err := a.shifts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "staff_id", Value: 1}, {Key: "date", Value: 1}, {Key: "shift_type", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("create shifts indexes: %w", err)
	}

	if _, err := a.appointments.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}},
		{Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "date", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("create appointments indexes: %w", err)
	}

	return nil
}

func (a *MongoStoreAdapter) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}

func (a *MongoStoreAdapter) ListShifts(ctx context.Context) ([]domain.Shift, error) {
	return findAll(ctx, a, a.shifts, shiftDocument.toDomain)
}

func (a *MongoStoreAdapter) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return findAll(ctx, a, a.rooms, roomDocument.toDomain)
}

func (a *MongoStoreAdapter) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	return findAll(ctx, a, a.appointments, appointmentDocument.toDomain)
}

func (a *MongoStoreAdapter) ListStaff(ctx context.Context) ([]domain.StaffRecord, error) {
	return findAll(ctx, a, a.staff, staffDocument.toDomain)
}

func (a *MongoStoreAdapter) CreateShift(ctx context.Context, shift domain.Shift) (domain.Shift, error) {
	if shift.ID == "" {
		shift.ID = uuid.NewString()
	}

	if _, err := a.shifts.InsertOne(ctx, newShiftDocument(shift)); err != nil {
		a.logger.Error("mongo.shifts.insert_failed", out.LogFields{
			"shiftId": shift.ID,
			"error":   err.Error(),
		})
		return domain.Shift{}, fmt.Errorf("insert shift: %w", err)
	}

	return shift, nil
}

func (a *MongoStoreAdapter) UpdateShift(ctx context.Context, id string, patch domain.ShiftPatch) (domain.Shift, error) {
	var doc shiftDocument
	err := a.shifts.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		shiftPatchUpdate(patch),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Shift{}, fmt.Errorf("shift %s: %w", id, domain.ErrShiftNotFound)
	}
	if err != nil {
		a.logger.Error("mongo.shifts.update_failed", out.LogFields{
			"shiftId": id,
			"error":   err.Error(),
		})
		return domain.Shift{}, fmt.Errorf("update shift: %w", err)
	}

	return doc.toDomain(), nil
}

func (a *MongoStoreAdapter) DeleteShift(ctx context.Context, id string) error {
	res, err := a.shifts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		a.logger.Error("mongo.shifts.delete_failed", out.LogFields{
			"shiftId": id,
			"error":   err.Error(),
		})
		return fmt.Errorf("delete shift: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("shift %s: %w", id, domain.ErrShiftNotFound)
	}
	return nil
}

func findAll[D any, T any](ctx context.Context, a *MongoStoreAdapter, collection *mongo.Collection, convert func(D) T) ([]T, error) {
	cursor, err := collection.Find(ctx, bson.M{})
	if err != nil {
		a.logger.Error("mongo."+collection.Name()+".find_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("find %s: %w", collection.Name(), err)
	}

	var docs []D
	if err := cursor.All(ctx, &docs); err != nil {
		a.logger.Error("mongo."+collection.Name()+".decode_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("decode %s: %w", collection.Name(), err)
	}

	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		items = append(items, convert(doc))
	}
	return items, nil
}
