package redisstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tosinoni/classification/tree"
	"github.com/tosinoni/classification/tree/json"
	"gopkg.in/redis.v5"
)

// StoreError represents an error on a tree store
type StoreError string

// ErrTreeNotFound is returned when loading a tree that is not on the store.
const ErrTreeNotFound = StoreError("tree not found")

func (se StoreError) Error() string {
	return string(se)
}

/*
Store keeps decision trees in a redis DB, each one under a name and
serialized as JSON by the tree/json package.
*/
type Store struct {
	rc     *redis.Client
	prefix string
}

// New builds a Store over the given redis client, keeping trees under keys with the given prefix.
func New(rc *redis.Client, prefix string) *Store {
	return &Store{rc, prefix}
}

// Dial takes a redis address and a key prefix and returns a Store with a client to the address.
func Dial(ctx context.Context, addr, prefix string) (*Store, error) {
	rc := redis.NewClient(&redis.Options{Addr: addr})
	if err := rc.Ping().Err(); err != nil {
		rc.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %v", addr, err)
	}
	if err := ctx.Err(); err != nil {
		rc.Close()
		return nil, err
	}
	return New(rc, prefix), nil
}

/*
Save takes a name and the root of a tree and stores the tree under the name,
replacing any tree previously stored with it.
*/
func (rs *Store) Save(ctx context.Context, name string, root *tree.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(root)
	if err != nil {
		return fmt.Errorf("storing tree %q: %v", name, err)
	}
	if err = rs.rc.Set(rs.keyFor(name), data, 0).Err(); err != nil {
		return fmt.Errorf("storing tree %q in redis: %v", name, err)
	}
	return nil
}

/*
Load takes a name and returns the root of the tree stored under it, or
ErrTreeNotFound if there is none.
*/
func (rs *Store) Load(ctx context.Context, name string) (*tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := rs.rc.Get(rs.keyFor(name)).Bytes()
	if err == redis.Nil {
		return nil, ErrTreeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q from redis: %v", name, err)
	}
	root, err := json.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q: %v", name, err)
	}
	return root, nil
}

// Delete removes the tree stored under the given name, if any.
func (rs *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := rs.rc.Del(rs.keyFor(name)).Err(); err != nil {
		return fmt.Errorf("deleting tree %q from redis: %v", name, err)
	}
	return nil
}

// Names returns the sorted names of the trees on the store.
func (rs *Store) Names(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	keys, err := rs.rc.Keys(rs.keyFor("*")).Result()
	if err != nil {
		return nil, fmt.Errorf("listing trees in redis: %v", err)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, strings.TrimPrefix(k, rs.prefix+":"))
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the underlying redis client.
func (rs *Store) Close() error {
	return rs.rc.Close()
}

func (rs *Store) keyFor(name string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, name)
}
