package internal

import (
	esv7 "github.com/elastic/go-elasticsearch/v7"

	"github.com/sanLimbu/todo-list/internal"
	"github.com/sanLimbu/todo-list/internal/envvar"
)

// NewElasticSearch instantiates the ElasticSearch client using configuration defined in environment variables,
// nil is returned when ELASTICSEARCH_URL is not set.
func NewElasticSearch(conf *envvar.Configuration) (*esv7.Client, error) {
	addr := conf.Default("ELASTICSEARCH_URL", "")
	if addr == "" {
		return nil, nil
	}

	es, err := esv7.NewClient(esv7.Config{
		Addresses: []string{addr},
	})
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "esv7.NewClient")
	}

	res, err := es.Info()
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "es.Info")
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, internal.NewErrorf(internal.ErrorCodeUnknown, "es.Info %d", res.StatusCode)
	}

	return es, nil
}
