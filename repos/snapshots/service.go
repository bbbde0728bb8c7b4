package snapshots

import (
	"context"
	"errors"
	"log"

	"cloud.google.com/go/firestore"
	"github.com/samborkent/uuidv7"
	"golang.org/x/xerrors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const collection = "FeedSnapshots"

var ErrNotFound = errors.New("snapshot not found")

// Service stores feed snapshots in Firestore.
type Service struct {
	Client *firestore.Client
}

func NewService(client *firestore.Client) *Service {
	return &Service{Client: client}
}

// NewID returns a time-ordered snapshot ID.
func NewID() string {
	return uuidv7.New().String()
}

func (s *Service) Save(ctx context.Context, snapshot FeedSnapshot) error {
	_, err := s.Client.Collection(collection).Doc(snapshot.ID).Set(ctx, snapshot)
	if err != nil {
		log.Printf("Failed to write snapshot %s to Firestore: %v\n", snapshot.ID, err)
		return xerrors.Errorf("saving snapshot %s: %w", snapshot.ID, err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*FeedSnapshot, error) {
	doc, err := s.Client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, notFound(id, err)
	}

	var snapshot FeedSnapshot
	if err := doc.DataTo(&snapshot); err != nil {
		log.Printf("Failed to decode snapshot %s: %v\n", id, err)
		return nil, xerrors.Errorf("decoding snapshot %s: %w", id, err)
	}
	return &snapshot, nil
}

// notFound maps Firestore's NotFound status onto ErrNotFound.
func notFound(id string, err error) error {
	if status.Code(err) == codes.NotFound {
		return xerrors.Errorf("snapshot %s: %w", id, ErrNotFound)
	}
	log.Printf("Failed to get snapshot %s from Firestore: %v\n", id, err)
	return xerrors.Errorf("getting snapshot %s: %w", id, err)
}
