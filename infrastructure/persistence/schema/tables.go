// Package schema holds the key layout of every table the service reads and
// writes. Both store implementations and the table bootstrapper work from it.
package schema

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// AttributeType is the scalar type of a key attribute.
type AttributeType string

const (
	Number AttributeType = "N"
	String AttributeType = "S"
)

// KeyAttribute names a key attribute and its type.
type KeyAttribute struct {
	Name string
	Type AttributeType
}

// IndexKind distinguishes global from local secondary indexes.
type IndexKind int

const (
	GlobalIndex IndexKind = iota
	LocalIndex
)

// Index describes a secondary index.
type Index struct {
	Name         string
	Kind         IndexKind
	PartitionKey KeyAttribute
	SortKey      *KeyAttribute
}

// Table describes a table's primary key and indexes.
type Table struct {
	Name         string
	PartitionKey KeyAttribute
	SortKey      *KeyAttribute
	Indexes      []Index
}

// Index returns the named index, if any.
func (t Table) Index(name string) (Index, bool) {
	for _, idx := range t.Indexes {
		if idx.Name == name {
			return idx, true
		}
	}
	return Index{}, false
}

// KeyNames lists the primary key attribute names.
func (t Table) KeyNames() []string {
	names := []string{t.PartitionKey.Name}
	if t.SortKey != nil {
		names = append(names, t.SortKey.Name)
	}
	return names
}

// Names are the physical names of the catalog tables and indexes.
type Names struct {
	Movies        string
	Reviews       string
	Cast          string
	ReviewerIndex string
	RoleIndex     string
}

// Catalog is the full set of tables.
type Catalog struct {
	Movies  Table
	Reviews Table
	Cast    Table
}

// NewCatalog builds the table layout for the given physical names.
func NewCatalog(n Names) Catalog {
	return Catalog{
		Movies: Table{
			Name:         n.Movies,
			PartitionKey: KeyAttribute{Name: "movieId", Type: Number},
		},
		Reviews: Table{
			Name:         n.Reviews,
			PartitionKey: KeyAttribute{Name: "movieId", Type: Number},
			SortKey:      &KeyAttribute{Name: "reviewId", Type: Number},
			Indexes: []Index{{
				Name:         n.ReviewerIndex,
				Kind:         GlobalIndex,
				PartitionKey: KeyAttribute{Name: "reviewerName", Type: String},
			}},
		},
		Cast: Table{
			Name:         n.Cast,
			PartitionKey: KeyAttribute{Name: "movieId", Type: Number},
			SortKey:      &KeyAttribute{Name: "actorName", Type: String},
			Indexes: []Index{{
				Name:         n.RoleIndex,
				Kind:         LocalIndex,
				PartitionKey: KeyAttribute{Name: "movieId", Type: Number},
				SortKey:      &KeyAttribute{Name: "roleName", Type: String},
			}},
		},
	}
}

// All returns every table in the catalog.
func (c Catalog) All() []Table {
	return []Table{c.Movies, c.Reviews, c.Cast}
}

// Lookup finds a table by physical name.
func (c Catalog) Lookup(name string) (Table, bool) {
	for _, t := range c.All() {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// CreateTableInput renders the table as an on-demand CreateTable request.
func (t Table) CreateTableInput() *dynamodb.CreateTableInput {
	attrs := map[string]types.ScalarAttributeType{}
	add := func(a KeyAttribute) {
		attrs[a.Name] = types.ScalarAttributeType(a.Type)
	}

	add(t.PartitionKey)
	keySchema := []types.KeySchemaElement{{AttributeName: aws.String(t.PartitionKey.Name), KeyType: types.KeyTypeHash}}
	if t.SortKey != nil {
		add(*t.SortKey)
		keySchema = append(keySchema, types.KeySchemaElement{AttributeName: aws.String(t.SortKey.Name), KeyType: types.KeyTypeRange})
	}

	input := &dynamodb.CreateTableInput{
		TableName:   aws.String(t.Name),
		KeySchema:   keySchema,
		BillingMode: types.BillingModePayPerRequest,
	}

	for _, idx := range t.Indexes {
		add(idx.PartitionKey)
		idxKeys := []types.KeySchemaElement{{AttributeName: aws.String(idx.PartitionKey.Name), KeyType: types.KeyTypeHash}}
		if idx.SortKey != nil {
			add(*idx.SortKey)
			idxKeys = append(idxKeys, types.KeySchemaElement{AttributeName: aws.String(idx.SortKey.Name), KeyType: types.KeyTypeRange})
		}
		projection := &types.Projection{ProjectionType: types.ProjectionTypeAll}

		switch idx.Kind {
		case GlobalIndex:
			input.GlobalSecondaryIndexes = append(input.GlobalSecondaryIndexes, types.GlobalSecondaryIndex{
				IndexName:  aws.String(idx.Name),
				KeySchema:  idxKeys,
				Projection: projection,
			})
		case LocalIndex:
			input.LocalSecondaryIndexes = append(input.LocalSecondaryIndexes, types.LocalSecondaryIndex{
				IndexName:  aws.String(idx.Name),
				KeySchema:  idxKeys,
				Projection: projection,
			})
		}
	}

	for name, typ := range attrs {
		input.AttributeDefinitions = append(input.AttributeDefinitions, types.AttributeDefinition{
			AttributeName: aws.String(name),
			AttributeType: typ,
		})
	}

	return input
}
