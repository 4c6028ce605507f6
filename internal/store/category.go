package store

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/ledger-backend/internal/dto"
	"github.com/GregMSThompson/ledger-backend/internal/errs"
	"github.com/GregMSThompson/ledger-backend/internal/ledger"
	"github.com/GregMSThompson/ledger-backend/internal/models"
	"github.com/GregMSThompson/ledger-backend/pkg/logger"
)

type categoryStore struct {
	client *firestore.Client
}

func NewCategoryStore(client *firestore.Client) *categoryStore {
	return &categoryStore{client: client}
}

func (s *categoryStore) collection(uid string, kind models.Kind) *firestore.CollectionRef {
	return userDoc(s.client, uid).Collection(string(kind) + "Categories")
}

func (s *categoryStore) markerDoc(uid string) *firestore.DocumentRef {
	return userDoc(s.client, uid).Collection(settingsCollection).Doc(categoriesSettingsDoc)
}

func (s *categoryStore) List(ctx context.Context, uid string, kind models.Kind) ([]models.Category, error) {
	docs, err := s.collection(uid, kind).OrderBy("position", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, storeError("list", "categories", err)
	}
	return categoriesFromDocs(docs, kind)
}

func categoriesFromDocs(docs []*firestore.DocumentSnapshot, kind models.Kind) ([]models.Category, error) {
	out := make([]models.Category, 0, len(docs))
	for _, d := range docs {
		var rec categoryRecord
		if err := d.DataTo(&rec); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse category data", err)
		}
		out = append(out, rec.model(d.Ref.ID, kind))
	}
	return out, nil
}

// SeedDefaults writes the default categories of a kind when the user has
// none and has never been seeded for that kind. It reports whether anything
// was written.
func (s *categoryStore) SeedDefaults(ctx context.Context, uid string, kind models.Kind, seeds []ledger.CategorySeed, now time.Time) (bool, error) {
	coll := s.collection(uid, kind)
	marker := s.markerDoc(uid)
	seeded := false

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		seeded = false

		snap, err := tx.Get(marker)
		if err != nil && !isNotFound(err) {
			return err
		}
		if err == nil {
			if done, _ := snap.Data()[string(kind)].(bool); done {
				return nil
			}
		}

		existing, err := tx.Documents(coll.Limit(1)).GetAll()
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			for i, seed := range seeds {
				rec := categoryRecord{
					Name:      seed.Name,
					Icon:      string(seed.Icon),
					Color:     seed.Color,
					Position:  i,
					CreatedAt: now,
				}
				if err := tx.Create(coll.NewDoc(), rec); err != nil {
					return err
				}
			}
			seeded = true
		}
		return tx.Set(marker, map[string]any{string(kind): true}, firestore.MergeAll)
	})
	if err != nil {
		return false, storeError("seed", "categories", err)
	}
	if seeded {
		logger.FromContext(ctx).Info("seeded default categories", "kind", kind, "count", len(seeds))
	}
	return seeded, nil
}

// Create enforces name uniqueness within the kind and appends the category
// at the end of the list.
func (s *categoryStore) Create(ctx context.Context, uid string, c *models.Category) error {
	coll := s.collection(uid, c.Kind)
	ref := coll.NewDoc()

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docs, err := tx.Documents(coll).GetAll()
		if err != nil {
			return err
		}
		existing, err := categoriesFromDocs(docs, c.Kind)
		if err != nil {
			return err
		}
		if nameTaken(existing, c.Name, "") {
			return errs.NewAlreadyExistsError("category " + c.Name + " already exists")
		}
		c.Position = len(existing)
		return tx.Create(ref, toCategoryRecord(c))
	})
	if err != nil {
		return storeError("create", "category", err)
	}
	c.CategoryID = ref.ID
	return nil
}

func (s *categoryStore) Get(ctx context.Context, uid string, kind models.Kind, id string) (*models.Category, error) {
	doc, err := s.collection(uid, kind).Doc(id).Get(ctx)
	if err != nil {
		return nil, storeError("read", "category", err)
	}
	var rec categoryRecord
	if err := doc.DataTo(&rec); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse category data", err)
	}
	c := rec.model(doc.Ref.ID, kind)
	return &c, nil
}

func (s *categoryStore) Update(ctx context.Context, uid string, kind models.Kind, id string, patch dto.UpdateCategoryRequest) error {
	coll := s.collection(uid, kind)
	ref := coll.Doc(id)
	ups := categoryUpdates(patch)
	if len(ups) == 0 {
		_, err := s.Get(ctx, uid, kind, id)
		return err
	}

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		if patch.Name != nil {
			docs, err := tx.Documents(coll).GetAll()
			if err != nil {
				return err
			}
			existing, err := categoriesFromDocs(docs, kind)
			if err != nil {
				return err
			}
			if nameTaken(existing, *patch.Name, id) {
				return errs.NewAlreadyExistsError("category " + *patch.Name + " already exists")
			}
		}
		return tx.Update(ref, ups)
	})
	return storeError("update", "category", err)
}

func categoryUpdates(p dto.UpdateCategoryRequest) []firestore.Update {
	var ups []firestore.Update
	if p.Name != nil {
		ups = append(ups, firestore.Update{Path: "name", Value: *p.Name})
	}
	if p.Icon != nil {
		ups = append(ups, firestore.Update{Path: "icon", Value: *p.Icon})
	}
	if p.Color != nil {
		ups = append(ups, firestore.Update{Path: "color", Value: *p.Color})
	}
	return ups
}

// Delete removes a category. Transactions keep the name and render with the
// kind's fallback category.
func (s *categoryStore) Delete(ctx context.Context, uid string, kind models.Kind, id string) error {
	_, err := s.collection(uid, kind).Doc(id).Delete(ctx)
	return storeError("delete", "category", err)
}

type bulkPositionJob struct {
	categoryID string
	job        *firestore.BulkWriterJob
}

// Reorder sets position = index for each id in order.
func (s *categoryStore) Reorder(ctx context.Context, uid string, kind models.Kind, order []string) error {
	log := logger.FromContext(ctx)
	bw := s.client.BulkWriter(ctx)
	coll := s.collection(uid, kind)

	jobs := make([]bulkPositionJob, 0, len(order))
	for pos, id := range order {
		j, err := bw.Update(coll.Doc(id), []firestore.Update{{Path: "position", Value: pos}})
		if err != nil {
			bw.End()
			return errs.NewDatabaseError("update", "failed to schedule position update", err)
		}
		jobs = append(jobs, bulkPositionJob{categoryID: id, job: j})
	}
	bw.End()

	for _, entry := range jobs {
		if _, err := entry.job.Results(); err != nil {
			log.Error("failed to update category position", "category_id", entry.categoryID, "error", err)
			return storeError("update", "category", err)
		}
	}
	return nil
}

func nameTaken(existing []models.Category, name, exceptID string) bool {
	name = strings.TrimSpace(name)
	for _, c := range existing {
		if c.CategoryID != exceptID && c.Name == name {
			return true
		}
	}
	return false
}
