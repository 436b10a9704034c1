// Package design describes the architecture of the todo list, render it with:
//
//	mdl serve github.com/sanLimbu/todo-list/internal/design
package design

import (
	. "goa.design/model/dsl"
)

var _ = Design("Todo List", "A minimal task tracking application.", func() {
	var System = SoftwareSystem("Todo List", "Adds, lists, completes and deletes todos.", func() {
		Container("Terminal UI", "Interactive todo list.", "Go and Bubble Tea", func() {
			Uses("REST Server", "Calls", "HTTP/JSON")
		})

		Container("REST Server", "Exposes the todos endpoints.", "Go and chi", func() {
			Uses("Database", "Reads from and writes to", "pgx or go-sqlite3")
			Uses("Memcached", "Caches todos in", "gomemcache")
			Uses("Message Broker", "Publishes todo events to", "Kafka, RabbitMQ or Redis")
			Uses("Elasticsearch", "Searches todos in", "go-elasticsearch")
		})

		Container("Elasticsearch Indexer", "Keeps the search index in sync with todo events.", "Go", func() {
			Uses("Message Broker", "Consumes todo events from")
			Uses("Elasticsearch", "Indexes todos in", "go-elasticsearch")
		})

		Container("Database", "Stores todos.", "PostgreSQL or SQLite", func() {
			Tag("Database")
		})

		Container("Memcached", "Caches todos by id.", "Memcached", func() {
			Tag("Database")
		})

		Container("Message Broker", "Distributes todo events.", "Kafka, RabbitMQ or Redis")

		Container("Elasticsearch", "Full text search over todos.", "Elasticsearch", func() {
			Tag("Database")
		})
	})

	Person("User", "Keeps track of things to do.", func() {
		Uses("Todo List/Terminal UI", "Manages todos with")
	})

	Views(func() {
		SystemContextView(System, "SystemContext", "System context diagram for the todo list.", func() {
			AddAll()
			AutoLayout(RankLeftRight)
		})

		ContainerView(System, "Containers", "Container diagram for the todo list.", func() {
			AddAll()
			AutoLayout(RankTopBottom)
		})

		Styles(func() {
			ElementStyle("Database", func() {
				Shape(ShapeCylinder)
			})
		})
	})
})
