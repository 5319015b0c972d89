package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/suinigeria/events-api/internal/domain/registration"
	"github.com/suinigeria/events-api/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "registrations"

type RegistrationsRepo struct {
	coll *mongo.Collection
	prom *observability.Prom
}

func NewRegistrationsRepo(db *mongo.Database, prom *observability.Prom) *RegistrationsRepo {
	return &RegistrationsRepo{
		coll: db.Collection(collectionName),
		prom: prom,
	}
}

func (repo *RegistrationsRepo) observe(op string, fn func() error) error {
	if repo.prom != nil {
		return repo.prom.ObserveRegistry(op, fn)
	}
	return fn()
}

// registrationDoc mirrors the wire schema of the registrations collection. Timestamps
// are stored as ISO-8601 strings, matching what the original site wrote; RFC 3339 in
// UTC sorts lexicographically in chronological order, which the listing sort relies on.
type registrationDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	FullName        string             `bson:"fullName"`
	Email           string             `bson:"email"`
	Event           string             `bson:"event"`
	ExperienceLevel string             `bson:"experienceLevel"`
	Status          string             `bson:"status"`
	CreatedAt       string             `bson:"createdAt"`
	LastUpdated     string             `bson:"lastUpdated"`
	RegistrationIP  string             `bson:"registrationIP"`
	UserAgent       string             `bson:"userAgent"`
}

func docFromDomain(reg registration.Registration) registrationDoc {
	return registrationDoc{
		FullName:        reg.FullName,
		Email:           reg.Email,
		Event:           reg.Event,
		ExperienceLevel: reg.ExperienceLevel,
		Status:          string(reg.Status),
		CreatedAt:       reg.CreatedAt.UTC().Format(time.RFC3339),
		LastUpdated:     reg.LastUpdated.UTC().Format(time.RFC3339),
		RegistrationIP:  reg.RegistrationIP,
		UserAgent:       reg.UserAgent,
	}
}

func (d registrationDoc) toDomain() (registration.Registration, error) {
	createdAt, err := time.Parse(time.RFC3339, d.CreatedAt)

	if err != nil {
		return registration.Registration{}, fmt.Errorf("parse createdAt of %s: %w", d.ID.Hex(), err)
	}

	lastUpdated, err := time.Parse(time.RFC3339, d.LastUpdated)

	if err != nil {
		return registration.Registration{}, fmt.Errorf("parse lastUpdated of %s: %w", d.ID.Hex(), err)
	}

	return registration.Registration{
		ID:              d.ID.Hex(),
		FullName:        d.FullName,
		Email:           d.Email,
		Event:           d.Event,
		ExperienceLevel: d.ExperienceLevel,
		Status:          registration.Status(d.Status),
		CreatedAt:       createdAt,
		LastUpdated:     lastUpdated,
		RegistrationIP:  d.RegistrationIP,
		UserAgent:       d.UserAgent,
	}, nil
}

// Create checks for an existing (email, event) pair and inserts a pending record.
// The check and the insert are two round trips, not one atomic operation: two
// concurrent submissions for the same pair can both pass the check. Accepted race.
func (repo *RegistrationsRepo) Create(ctx context.Context, req registration.CreateRegistrationRequest, prov registration.Provenance) (reg registration.Registration, err error) {
	err = repo.observe("registrations.duplicate_check", func() error {
		findErr := repo.coll.FindOne(ctx, bson.M{
			"email": req.Email,
			"event": req.Event,
		}).Err()

		if findErr == nil {
			return registration.ErrAlreadyRegistered
		}

		if errors.Is(findErr, mongo.ErrNoDocuments) {
			return nil
		}

		return findErr
	})

	if err != nil {
		return
	}

	reg = registration.NewFromCreateRequest(req, prov)

	err = repo.observe("registrations.insert", func() error {
		res, insErr := repo.coll.InsertOne(ctx, docFromDomain(reg))

		if insErr != nil {
			return insErr
		}

		oid, ok := res.InsertedID.(primitive.ObjectID)

		if !ok {
			return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
		}

		reg.ID = oid.Hex()
		return nil
	})

	if err != nil {
		reg = registration.Registration{}
		return
	}

	return
}

// List returns every registration, newest first.
func (repo *RegistrationsRepo) List(ctx context.Context) (regs []registration.Registration, err error) {
	var docs []registrationDoc

	err = repo.observe("registrations.list", func() error {
		cur, qErr := repo.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))

		if qErr != nil {
			return qErr
		}

		return cur.All(ctx, &docs)
	})

	if err != nil {
		return
	}

	regs = make([]registration.Registration, 0, len(docs))

	for _, d := range docs {
		r, convErr := d.toDomain()

		if convErr != nil {
			err = convErr
			regs = nil
			return
		}

		regs = append(regs, r)
	}

	return
}

// UpdateStatus sets the status and refreshes lastUpdated, returning the updated
// record. A missing identifier fails loudly with ErrNotFound rather than no-opping.
func (repo *RegistrationsRepo) UpdateStatus(ctx context.Context, id string, status registration.Status) (reg registration.Registration, err error) {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		err = registration.ErrNotFound
		return
	}

	var doc registrationDoc

	err = repo.observe("registrations.update_status", func() error {
		after := options.After

		return repo.coll.FindOneAndUpdate(ctx,
			bson.M{"_id": oid},
			bson.M{"$set": bson.M{
				"status":      string(status),
				"lastUpdated": time.Now().UTC().Format(time.RFC3339),
			}},
			&options.FindOneAndUpdateOptions{ReturnDocument: &after},
		).Decode(&doc)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = registration.ErrNotFound
		}
		return
	}

	reg, err = doc.toDomain()
	return
}
