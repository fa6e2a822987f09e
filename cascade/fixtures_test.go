package cascade_test

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/stockroom/cascade"
	"github.com/jacentio/stockroom/store"
)

// Box holds one lid and a collection of parts.
type Box struct {
	ID    string  `dynamodbav:"id"`
	Label string  `dynamodbav:"label"`
	Lid   *Lid    `dynamodbav:"-"`
	Parts []*Part `dynamodbav:"-"`
}

func (b *Box) TableName() string  { return "boxes" }
func (b *Box) EntityRef() string  { return "box#" + b.ID }
func (b *Box) EntityType() string { return "box" }
func (b *Box) GetKey() store.PK {
	return store.PK{"id": &types.AttributeValueMemberS{Value: b.ID}}
}

// Lid is referenced once by a box.
type Lid struct {
	ID string `dynamodbav:"id"`
}

func (l *Lid) TableName() string  { return "lids" }
func (l *Lid) EntityRef() string  { return "lid#" + l.ID }
func (l *Lid) EntityType() string { return "lid" }
func (l *Lid) GetKey() store.PK {
	return store.PK{"id": &types.AttributeValueMemberS{Value: l.ID}}
}

// Part may itself reference a sub-part.
type Part struct {
	ID  string `dynamodbav:"id"`
	Sub *Part  `dynamodbav:"-"`
}

func (p *Part) TableName() string  { return "parts" }
func (p *Part) EntityRef() string  { return "part#" + p.ID }
func (p *Part) EntityType() string { return "part" }
func (p *Part) GetKey() store.PK {
	return store.PK{"id": &types.AttributeValueMemberS{Value: p.ID}}
}

func boxLid(e store.Entity) store.Entity {
	b := e.(*Box)
	if b.Lid == nil {
		return nil
	}
	return b.Lid
}

func boxParts(e store.Entity) []store.Entity {
	b := e.(*Box)
	out := make([]store.Entity, 0, len(b.Parts))
	for _, p := range b.Parts {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

func partSub(e store.Entity) store.Entity {
	p := e.(*Part)
	if p.Sub == nil {
		return nil
	}
	return p.Sub
}

func boxSchema() cascade.Schema {
	return cascade.Schema{
		EntityType: "box",
		Fields: []cascade.Field{
			{Name: "id", Kind: cascade.KindPlain},
			{Name: "label", Kind: cascade.KindPlain},
			{Name: "lid", Kind: cascade.KindRef, Markers: cascade.MarkRef | cascade.MarkCascadeSave, Target: "lid", One: boxLid},
			{Name: "parts", Kind: cascade.KindRefCollection, Markers: cascade.MarkRef | cascade.MarkCascadeSave, Target: "part", Many: boxParts},
		},
	}
}

func partSchema() cascade.Schema {
	return cascade.Schema{
		EntityType: "part",
		Fields: []cascade.Field{
			{Name: "id", Kind: cascade.KindPlain},
			{Name: "sub", Kind: cascade.KindRef, Markers: cascade.MarkRef | cascade.MarkCascadeSave, Target: "part", One: partSub},
		},
	}
}

func testRegistry() *cascade.Registry {
	r := cascade.NewRegistry()
	r.Register(boxSchema())
	r.Register(partSchema())
	return r
}

// recorder is a store.Writer that records every Put.
type recorder struct {
	mu    sync.Mutex
	puts  []string
	fails map[string]error
}

func newRecorder() *recorder {
	return &recorder{fails: make(map[string]error)}
}

func (r *recorder) failOn(ref string, err error) {
	r.fails[ref] = err
}

func (r *recorder) Put(_ context.Context, e store.Entity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.puts = append(r.puts, e.EntityRef())
	return r.fails[e.EntityRef()]
}
