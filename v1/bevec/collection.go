package bevec

import (
	"context"

	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

// Collection is a handle on one backend collection. It holds a snapshot of
// the collection info taken when the handle was created; call Refresh for
// current numbers.
type Collection struct {
	client *Client
	info   vectordb.Collection
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.info.Name
}

// Info returns the snapshot taken when the handle was created.
func (c *Collection) Info() vectordb.Collection {
	return c.info
}

// Dimension returns the vector size, 0 when the backend does not know it.
func (c *Collection) Dimension() int {
	return c.info.Dimension
}

// Refresh returns a new handle with current collection info.
func (c *Collection) Refresh(ctx context.Context) (*Collection, error) {
	return c.client.GetCollection(ctx, c.info.Name)
}

// Upsert inserts or replaces records. Records are checked against the
// collection dimension before anything is sent.
func (c *Collection) Upsert(ctx context.Context, records []vectordb.Record) error {
	return c.client.upsert(ctx, vectordb.UpsertRequest{
		Collection: c.info.Name,
		Records:    records,
		Dimension:  c.info.Dimension,
	})
}

// Query returns the records nearest to vector, best match first.
func (c *Collection) Query(ctx context.Context, vector []float32, opts ...QueryOption) ([]vectordb.QueryResult, error) {
	return c.client.query(ctx, vectordb.QueryRequest{
		Collection: c.info.Name,
		Vector:     vector,
		Dimension:  c.info.Dimension,
	}, opts)
}

// Delete removes records by ID.
func (c *Collection) Delete(ctx context.Context, ids ...string) error {
	return c.client.Delete(ctx, c.info.Name, ids...)
}

// DeleteContents removes every record but keeps the collection.
func (c *Collection) DeleteContents(ctx context.Context) error {
	return c.client.DeleteContents(ctx, c.info.Name)
}
