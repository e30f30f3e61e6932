/*
Package sql provides reading and writing of sample sets on SQL databases
through an Adapter. Adapters for specific engines live in subpackages:
sqlite3adapter for SQLite3 files and pgadapter for PostgreSQL.
*/
package sql
