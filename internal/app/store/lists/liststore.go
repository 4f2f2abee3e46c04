package liststore

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/rosterhub/internal/app/system/apierr"
	"github.com/dalemusser/rosterhub/internal/app/system/normalize"
	"github.com/dalemusser/rosterhub/internal/app/system/search"
	"github.com/dalemusser/rosterhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("lists")}
}

var (
	validate = validator.New()

	// Labels and acronyms are rendered in emails and other clients' HTML;
	// strip markup on the way in rather than trusting every renderer.
	htmlStrip = bluemonday.StrictPolicy()
)

// CreateParams are the client-writable fields for a new list. Name is always
// derived server-side.
type CreateParams struct {
	Label       string             `validate:"required"`
	Acronym     string             `validate:"-"`
	Type        models.ListType    `validate:"required,oneof=operation bundle disaster list organization functional_role office"`
	Visibility  models.Visibility  `validate:"required,oneof=me inlist all verified"`
	Joinability models.Joinability `validate:"required,oneof=public moderated private"`
	Owner       primitive.ObjectID `validate:"-"`
	Managers    []primitive.ObjectID
	Metadata    bson.M
}

// Create validates and inserts a new list, deriving name and name_ci.
func (s *Store) Create(ctx context.Context, p CreateParams) (models.List, error) {
	p.Label = normalize.Label(htmlStrip.Sanitize(p.Label))
	p.Acronym = normalize.Label(htmlStrip.Sanitize(p.Acronym))

	if err := validate.Struct(p); err != nil {
		return models.List{}, err
	}

	name := models.DeriveName(p.Label, p.Acronym)
	now := time.Now()
	l := models.List{
		ID:          primitive.NewObjectID(),
		Label:       p.Label,
		Acronym:     p.Acronym,
		Name:        name,
		NameCI:      text.Fold(name),
		Type:        p.Type,
		Visibility:  p.Visibility,
		Joinability: p.Joinability,
		Owner:       p.Owner,
		Managers:    dedupe(p.Managers),
		Metadata:    p.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.c.InsertOne(ctx, l); err != nil {
		return models.List{}, err
	}
	return l, nil
}

// FindByID loads a list. Deleted lists are excluded unless includeDeleted;
// returns mongo.ErrNoDocuments when nothing matches.
func (s *Store) FindByID(ctx context.Context, id primitive.ObjectID, includeDeleted bool) (*models.List, error) {
	filter := bson.M{"_id": id}
	if !includeDeleted {
		filter["deleted"] = false
	}
	var l models.List
	if err := s.c.FindOne(ctx, filter).Decode(&l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Update applies a client-supplied field set to a live list and returns both
// the previous and updated documents so callers can diff (manager change
// notifications). Name and name_ci are recomputed whenever label or acronym
// change; they are never written directly.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (prev, updated *models.List, err error) {
	prev, err = s.FindByID(ctx, id, false)
	if err != nil {
		return nil, nil, err
	}

	apply := bson.M{}
	for k, v := range set {
		apply[k] = v
	}

	label, acronym := prev.Label, prev.Acronym
	rederive := false
	if v, ok := apply["label"].(string); ok {
		label = normalize.Label(htmlStrip.Sanitize(v))
		apply["label"] = label
		rederive = true
	}
	if v, ok := apply["acronym"].(string); ok {
		acronym = normalize.Label(htmlStrip.Sanitize(v))
		apply["acronym"] = acronym
		rederive = true
	}
	if rederive {
		if label == "" {
			return nil, nil, apierr.Validation("label is required")
		}
		name := models.DeriveName(label, acronym)
		apply["name"] = name
		apply["name_ci"] = text.Fold(name)
	}
	if v, ok := apply["managers"].([]primitive.ObjectID); ok {
		apply["managers"] = dedupe(v)
	}
	apply["updated_at"] = time.Now()

	var after models.List
	err = s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "deleted": false},
		bson.M{"$set": apply},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&after)
	if err != nil {
		return nil, nil, err
	}
	return prev, &after, nil
}

// MarkDeleted soft-deletes a list and returns the updated document. Calling
// it on an already deleted list is a no-op that still returns the record.
func (s *Store) MarkDeleted(ctx context.Context, id primitive.ObjectID) (*models.List, error) {
	var l models.List
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"deleted": true, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&l)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Criteria narrows a collection query. Name and Label match as neutralized,
// case-insensitive substrings. Scope carries the caller's visibility clause
// (empty for admins, who see everything).
type Criteria struct {
	Name           string
	Label          string
	Type           models.ListType
	Scope          bson.M
	IncludeDeleted bool
}

func (c Criteria) filter() bson.M {
	f := bson.M{}
	if !c.IncludeDeleted {
		f["deleted"] = false
	}
	if c.Name != "" {
		f["name"] = search.ContainsPattern(c.Name)
	}
	if c.Label != "" {
		f["label"] = search.ContainsPattern(c.Label)
	}
	if c.Type != "" {
		f["type"] = c.Type
	}
	for k, v := range c.Scope {
		f[k] = v
	}
	return f
}

// FindOptions control sorting and paging. Sort accepts name, created_at,
// updated_at, optionally prefixed with "-" for descending; the default is
// name ascending. Name sorts on the folded name_ci with _id as tiebreak so
// pages are stable.
type FindOptions struct {
	Sort  string
	Skip  int64
	Limit int64
}

func (o FindOptions) sortDoc() bson.D {
	field := o.Sort
	dir := 1
	if len(field) > 0 && field[0] == '-' {
		dir = -1
		field = field[1:]
	}
	switch field {
	case "created_at", "updated_at":
		return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}
	default:
		return bson.D{{Key: "name_ci", Value: dir}, {Key: "_id", Value: dir}}
	}
}

// Find returns the lists matching crit, sorted and paged per opt.
func (s *Store) Find(ctx context.Context, crit Criteria, opt FindOptions) ([]models.List, error) {
	fo := options.Find().SetSort(opt.sortDoc())
	if opt.Skip > 0 {
		fo.SetSkip(opt.Skip)
	}
	if opt.Limit > 0 {
		fo.SetLimit(opt.Limit)
	}

	cur, err := s.c.Find(ctx, crit.filter(), fo)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	lists := []models.List{}
	if err := cur.All(ctx, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// Count returns the total match count for crit, ignoring paging. Serves the
// X-Total-Count header.
func (s *Store) Count(ctx context.Context, crit Criteria) (int64, error) {
	return s.c.CountDocuments(ctx, crit.filter())
}

func dedupe(ids []primitive.ObjectID) []primitive.ObjectID {
	if len(ids) == 0 {
		return []primitive.ObjectID{}
	}
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
