// Package mongostore backs the scoring collaborators with MongoDB, the store
// the simulation service writes sessions and metrics to.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/virtualpatient/clinsim/internal/scoring"
)

type Store struct {
	sessions *mongo.Collection
	metrics  *mongo.Collection
	results  *mongo.Collection
	rubrics  *mongo.Collection
}

func NewStore(client *mongo.Client, dbName string) *Store {
	db := client.Database(dbName)
	return &Store{
		sessions: db.Collection("sessions"),
		metrics:  db.Collection("performance_metrics"),
		results:  db.Collection("scoring_results"),
		rubrics:  db.Collection("rubrics"),
	}
}

// Connect dials MongoDB and pings it before returning.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

type sessionDoc struct {
	ID              string            `bson:"_id"`
	UserID          string            `bson:"user_id"`
	CaseID          string            `bson:"case_id"`
	CaseSpecialty   string            `bson:"case_specialty,omitempty"`
	DurationMinutes float64           `bson:"duration_minutes"`
	Messages        []scoring.Message `bson:"messages"`
}

func (s *Store) GetSessionWithContext(ctx context.Context, sessionID string) (*scoring.SessionRecord, error) {
	var doc sessionDoc
	err := s.sessions.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &scoring.SessionRecord{
		ID:              doc.ID,
		UserID:          doc.UserID,
		CaseID:          doc.CaseID,
		CaseSpecialty:   doc.CaseSpecialty,
		DurationMinutes: doc.DurationMinutes,
		Messages:        doc.Messages,
	}, nil
}

func (s *Store) GetMetrics(ctx context.Context, sessionID string) (*scoring.PerformanceMetrics, error) {
	var m scoring.PerformanceMetrics
	err := s.metrics.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

type resultDoc struct {
	SessionID string                 `bson:"_id"`
	UserID    string                 `bson:"user_id"`
	Result    *scoring.ScoringResult `bson:"result"`
	Score     int                    `bson:"final_score"`
	Evaluated time.Time              `bson:"evaluated_at"`
}

// SaveResult replaces the per-session result document, keeping the
// overwrite-on-rescore contract.
func (s *Store) SaveResult(ctx context.Context, sessionID string, res *scoring.ScoringResult) error {
	doc := resultDoc{
		SessionID: sessionID,
		UserID:    res.UserID,
		Result:    res,
		Score:     res.FinalScore,
		Evaluated: res.EvaluatedAt,
	}
	_, err := s.results.ReplaceOne(ctx, bson.M{"_id": sessionID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (s *Store) GetResult(ctx context.Context, sessionID string) (*scoring.ScoringResult, error) {
	var doc resultDoc
	err := s.results.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.Result, nil
}

type rubricDoc struct {
	RubricID string                   `bson:"rubric_id"`
	Version  int                      `bson:"version"`
	Name     string                   `bson:"name"`
	Areas    []scoring.CompetencyArea `bson:"areas"`
	Active   bool                     `bson:"active"`
}

func (s *Store) ActiveRubric(ctx context.Context) (scoring.Rubric, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}})
	var doc rubricDoc
	err := s.rubrics.FindOne(ctx, bson.M{"active": true}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return scoring.Rubric{}, fmt.Errorf("no active rubric configured")
	}
	if err != nil {
		return scoring.Rubric{}, err
	}
	return scoring.Rubric{
		ID:              doc.RubricID,
		Name:            doc.Name,
		Version:         doc.Version,
		CompetencyAreas: doc.Areas,
	}, nil
}

// SeedDefaultRubric installs the built-in rubric when none is active.
func (s *Store) SeedDefaultRubric(ctx context.Context) error {
	n, err := s.rubrics.CountDocuments(ctx, bson.M{"active": true})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	r := scoring.DefaultRubric()
	doc := rubricDoc{RubricID: r.ID, Version: r.Version, Name: r.Name, Areas: r.CompetencyAreas, Active: true}
	_, err = s.rubrics.UpdateOne(ctx,
		bson.M{"rubric_id": r.ID, "version": r.Version},
		bson.M{"$setOnInsert": doc},
		options.Update().SetUpsert(true))
	return err
}
