package mask_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/rise-and-shine/bucketfs/mask"
)

func keysAndValues(om *orderedmap.OrderedMap[string, any]) ([]string, []any) {
	var keys []string
	var values []any
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
		values = append(values, pair.Value)
	}
	return keys, values
}

func TestStructToOrdMap_NilInput(t *testing.T) {
	assert.Nil(t, mask.StructToOrdMap(nil))
}

func TestStructToOrdMap(t *testing.T) {
	type store struct {
		Endpoint  string `yaml:"endpoint"`
		SecretKey string `yaml:"secret_key" mask:"true"`
		Token     string `yaml:"token"      mask:"true"`
	}
	type config struct {
		Name     string `json:"name,omitempty"`
		Internal string `json:"-"`
		Store    store  `yaml:"store"`
		Limit    *int   `yaml:"limit"`
		Port     int
		hidden   string
	}

	cfg := config{
		Name:     "bucketfs",
		Internal: "skip me",
		Store:    store{Endpoint: "localhost:9000", SecretKey: "s3cr3t"},
		Port:     8080,
		hidden:   "x",
	}
	_ = cfg.hidden

	keys, values := keysAndValues(mask.StructToOrdMap(cfg))

	assert.Equal(t, []string{
		"name",
		"store.endpoint",
		"store.secret_key",
		"store.token",
		"limit",
		"Port",
	}, keys)
	assert.Equal(t, []any{
		"bucketfs",
		"localhost:9000",
		mask.Masked,
		"",
		(*int)(nil),
		8080,
	}, values)
}

func TestStructToOrdMap_Pointer(t *testing.T) {
	type request struct {
		Path     string `json:"path"`
		IsFolder bool   `json:"isFolder"`
	}

	keys, values := keysAndValues(mask.StructToOrdMap(&request{Path: "a/", IsFolder: true}))

	assert.Equal(t, []string{"path", "isFolder"}, keys)
	assert.Equal(t, []any{"a/", true}, values)
}
