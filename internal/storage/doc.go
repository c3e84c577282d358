// Package storage persists rounds, standings and round metadata of a season.
//
// FileStore keeps one JSON document per round under
// <data_dir>/season-<season>/rounds/NN.json next to standings.json and metadata.json.
// Files are written to a temporary file first and renamed into place, so readers never
// see a partial document. RedisStore keeps the same documents in Redis for deployments
// without a persistent disk.
package storage
