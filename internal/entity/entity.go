package entity

// Entity is the minimal contract every managed resource must satisfy:
// a positive integer identity assigned by the persistence layer on create.
// An ID of zero means the entity has not been persisted yet.
type Entity interface {
	GetID() int64
	SetID(id int64)
}

// Model is an embeddable base that satisfies Entity. Domain types embed it
// and add their own fields:
//
//	type Product struct {
//	    entity.Model
//	    Name  string  `json:"name"`
//	    Price float64 `json:"price"`
//	}
type Model struct {
	ID int64 `json:"id"`
}

// GetID returns the persisted identity, or zero if not yet created.
func (m *Model) GetID() int64 { return m.ID }

// SetID assigns the identity. Called by the repository after insert and by
// the controller to make the path ID authoritative over the payload.
func (m *Model) SetID(id int64) { m.ID = id }
