package document

import (
	"context"
	"fmt"
	"time"

	"github.com/Rajeswari195/kayak/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AuditStore is the admin_audit_logs collection gateway. The core only
// writes to it when an admin deactivates a user; every other audit entry
// is produced by out-of-scope workers.
type AuditStore struct {
	collection *mongo.Collection
}

// NewAuditStore builds an AuditStore over the shared document database.
func NewAuditStore(db *mongo.Database) *AuditStore {
	return &AuditStore{collection: db.Collection("admin_audit_logs")}
}

// Record appends an audit entry.
func (s *AuditStore) Record(ctx context.Context, log *models.AdminAuditLog) error {
	if log.At.IsZero() {
		log.At = time.Now()
	}
	if _, err := s.collection.InsertOne(ctx, log); err != nil {
		return fmt.Errorf("failed to record audit log: %w", err)
	}
	return nil
}
