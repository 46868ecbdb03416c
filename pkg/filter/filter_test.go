package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yezz123/vectorai/pkg/entity"
)

func TestMatchEq(t *testing.T) {
	f := Filter{"category": EqClause(entity.String("news"))}
	assert.True(t, Match(f, entity.Metadata{"category": entity.String("news")}, nil))
	assert.False(t, Match(f, entity.Metadata{"category": entity.String("sports")}, nil))
}

func TestMatchIn(t *testing.T) {
	f := Filter{"tier": InClause(entity.Int(1), entity.Int(2))}
	assert.True(t, Match(f, entity.Metadata{"tier": entity.Int(2)}, nil))
	assert.False(t, Match(f, entity.Metadata{"tier": entity.Int(3)}, nil))
}

func TestMatchRange(t *testing.T) {
	lo, hi := entity.Int(10), entity.Int(20)
	f := Filter{"score": RangeClause(&lo, &hi)}
	assert.True(t, Match(f, entity.Metadata{"score": entity.Int(15)}, nil))
	assert.False(t, Match(f, entity.Metadata{"score": entity.Int(25)}, nil))
	assert.False(t, Match(f, entity.Metadata{"score": entity.Int(5)}, nil))
}

func TestMatchRangeOpenBound(t *testing.T) {
	hi := entity.Int(20)
	f := Filter{"score": RangeClause(nil, &hi)}
	assert.True(t, Match(f, entity.Metadata{"score": entity.Int(-100)}, nil))
	assert.False(t, Match(f, entity.Metadata{"score": entity.Int(21)}, nil))
}

func TestMatchChunkShadowsDocument(t *testing.T) {
	f := Filter{"category": EqClause(entity.String("news"))}
	chunkMeta := entity.Metadata{"category": entity.String("news")}
	docMeta := entity.Metadata{"category": entity.String("sports")}
	assert.True(t, Match(f, chunkMeta, docMeta), "chunk metadata must shadow document metadata")
}

func TestMatchFallsBackToDocument(t *testing.T) {
	f := Filter{"category": EqClause(entity.String("news"))}
	docMeta := entity.Metadata{"category": entity.String("news")}
	assert.True(t, Match(f, nil, docMeta))
}

func TestMatchMissingFieldFails(t *testing.T) {
	f := Filter{"category": EqClause(entity.String("news"))}
	assert.False(t, Match(f, entity.Metadata{}, nil))
}

func TestMatchAllowNull(t *testing.T) {
	c := EqClause(entity.String("news"))
	c.AllowNull = true
	f := Filter{"category": c}
	assert.True(t, Match(f, entity.Metadata{}, nil))
}

func TestMatchConjunction(t *testing.T) {
	f := Filter{
		"category": EqClause(entity.String("news")),
		"tier":     InClause(entity.Int(1), entity.Int(2)),
	}
	meta := entity.Metadata{"category": entity.String("news"), "tier": entity.Int(2)}
	assert.True(t, Match(f, meta, nil))

	meta["tier"] = entity.Int(9)
	assert.False(t, Match(f, meta, nil), "every clause in the conjunction must hold")
}
