// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// legacyIssueEmailIndex was a unique index on issues.email. Users may file
// more than one issue, so it is dropped when found.
const legacyIssueEmailIndex = "email_1"

/*
EnsureAll is called at startup. Each step is idempotent.
Errors are aggregated so every problem is visible and startup fails fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	steps := []struct {
		coll string
		fn   func(context.Context, *mongo.Database) error
	}{
		{"users", ensureUsers},
		{"assignusers", ensureAssignUsers},
		{"groups", ensureGroups},
		{"slots", ensureSlots},
		{"initialslots", ensureInitialSlots},
		{"orders", ensureOrders},
		{"feedbacks", ensureFeedbacks},
		{"issues", ensureIssues},
		{"profileimages", ensureProfileImages},
		{"userpreferences", ensureUserPreferences},
	}
	for _, s := range steps {
		if err := s.fn(ctx, db); err != nil {
			problems = append(problems, s.coll+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Reconcile a set of desired indexes for one collection                      */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func isUnique(p *bool) bool { return p != nil && *p }

func listIndexes(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]existingIndex{}
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out, cur.Err()
}

// ensureIndexSet creates each desired index, reusing an existing one with the
// same keys and uniqueness. An index with matching keys but a different name
// or uniqueness is dropped and recreated.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var name string
		var unique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			unique = m.Options.Unique
		}
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()
		fields := []zap.Field{
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", isUnique(unique)),
		}

		existing, err := listIndexes(ctx, coll)
		if err != nil {
			// A collection that does not exist yet has no indexes to list.
			zap.L().Debug("list indexes failed", append(fields, zap.Error(err))...)
			existing = map[string]existingIndex{}
		}

		if ex, ok := existing[sig]; ok {
			if isUnique(ex.Unique) == isUnique(unique) && (name == "" || ex.Name == name) {
				zap.L().Info("reusing existing index", append(fields, zap.Duration("took", time.Since(start)))...)
				continue
			}
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop %s failed: %v", coll.Name(), name, ex.Name, err))
				continue
			}
			zap.L().Info("dropped index to realign options",
				append(fields, zap.String("dropped", ex.Name))...)
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if wafflemongo.IsDup(err) && isUnique(unique) {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index, duplicates present on %s",
					coll.Name(), name, sig))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			}
			zap.L().Warn("index ensure failed", append(fields, zap.Error(err))...)
			continue
		}
		zap.L().Info("index ensured", append(fields, zap.Duration("took", time.Since(start)))...)
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// dropIndexIfPresent removes an index by name. A missing index or collection
// is not an error.
func dropIndexIfPresent(ctx context.Context, coll *mongo.Collection, name string) error {
	existing, err := listIndexes(ctx, coll)
	if err != nil {
		return nil
	}
	for _, ex := range existing {
		if ex.Name != name {
			continue
		}
		if _, err := coll.Indexes().DropOne(ctx, name); err != nil {
			return fmt.Errorf("drop %s: %w", name, err)
		}
		zap.L().Info("dropped legacy index",
			zap.String("collection", coll.Name()),
			zap.String("name", name))
	}
	return nil
}

func uniqueOn(field, name string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetName(name).SetUnique(true),
	}
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		uniqueOn("email", "uniq_users_email"),
	})
}

func ensureAssignUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("assignusers"), []mongo.IndexModel{
		uniqueOn("auEmail", "uniq_assignusers_auemail"),
		{
			// GET /assignUsers lists by owner.
			Keys:    bson.D{{Key: "addedBy", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("idx_assignusers_addedby_created"),
		},
	})
}

func ensureGroups(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("groups"), []mongo.IndexModel{
		uniqueOn("email", "uniq_groups_email"),
	})
}

func ensureSlots(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("slots"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_slots_email"),
		},
	})
}

func ensureInitialSlots(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("initialslots"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_initialslots_email"),
		},
	})
}

func ensureOrders(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("orders"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_id", Value: 1}},
			Options: options.Index().SetName("idx_orders_order_id"),
		},
	})
}

func ensureFeedbacks(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("feedbacks"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userEmail", Value: 1}},
			Options: options.Index().SetName("idx_feedbacks_useremail"),
		},
	})
}

func ensureIssues(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("issues")
	if err := dropIndexIfPresent(ctx, coll, legacyIssueEmailIndex); err != nil {
		return err
	}
	return ensureIndexSet(ctx, coll, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_issues_email__id"),
		},
	})
}

func ensureProfileImages(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("profileimages"), []mongo.IndexModel{
		uniqueOn("email", "uniq_profileimages_email"),
	})
}

func ensureUserPreferences(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("userpreferences"), []mongo.IndexModel{
		uniqueOn("email", "uniq_userpreferences_email"),
	})
}
