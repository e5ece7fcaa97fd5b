// Package config loads the application configuration used by the unifinder
// command.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// UNIFINDER_* environment variables. The file is the one named by --config,
// else the one named by UNIFINDER_CONFIG, else the first of
// DefaultConfigPaths that exists.
//
// Example file:
//
//	database:
//	  path: ./unifinder.db
//	ai:
//	  embedding_host: http://localhost:11434/v1
//	  embedding_model: embeddinggemma
//	recommend:
//	  threshold: 0.4
//	  budget_scope: private
//
// Environment variables name a section and key joined by an underscore:
// UNIFINDER_RECOMMEND_THRESHOLD, UNIFINDER_AI_EMBEDDING_MODEL, UNIFINDER_LOG_LEVEL.
package config
