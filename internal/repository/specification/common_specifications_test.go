package specification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterQuotesColumn(t *testing.T) {
	sql, vars := buildSQL(t, Filter("name", "Wireless Mouse"))

	assert.Contains(t, sql, `WHERE "name" = $1`)
	assert.Equal(t, []interface{}{"Wireless Mouse"}, vars)
}

func TestOrderByDirection(t *testing.T) {
	sql, _ := buildSQL(t, OrderBy{Field: "price", Desc: true}, OrderBy{Field: "name"})

	assert.Contains(t, sql, `ORDER BY "price" DESC,"name"`)
}

func TestApplyAllKeepsOrder(t *testing.T) {
	sql, vars := buildSQL(t, Filter("name", "a"), Limit{N: 2})
	assert.Contains(t, sql, `WHERE "name" = $1`)
	assert.Contains(t, sql, "LIMIT $2")
	assert.Equal(t, []interface{}{"a", 2}, vars)
}
