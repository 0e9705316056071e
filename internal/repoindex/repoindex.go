/*
Copyright SUSE LLC.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.

Package repoindex reads a repository's package index from a local YAML
file and turns it into an internal/repository.Repository. It never talks
to the network: the index file is expected to already sit on disk (fetched
by some other tool, or checked into a fixture directory), and a small
digest-keyed Cache avoids re-parsing an unchanged index on repeated loads
within one process.
*/
package repoindex

import (
	"io/ioutil"
	"os"
	"sync"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/gofrs/flock"
	digest "github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/rancher-sandbox/pkgsolve/internal/pkgmodel"
	"github.com/rancher-sandbox/pkgsolve/internal/repository"
)

// APIVersionV1 is the only index file format this reader understands.
const APIVersionV1 = "v1"

// ErrNoAPIVersion is returned when an index file omits its apiVersion.
var ErrNoAPIVersion = errors.New("repoindex: no apiVersion specified")

// entry is one package as it appears in an index file.
type entry struct {
	Name       string   `yaml:"name"`
	Version    string   `yaml:"version"`
	Requires   []link   `yaml:"requires,omitempty"`
	Conflicts  []link   `yaml:"conflicts,omitempty"`
	Provides   []link   `yaml:"provides,omitempty"`
	Replaces   []link   `yaml:"replaces,omitempty"`
	Recommends []link   `yaml:"recommends,omitempty"`
	Suggests   []link   `yaml:"suggests,omitempty"`
}

type link struct {
	Name       string `yaml:"name"`
	Constraint string `yaml:"constraint,omitempty"`
}

// IndexFile is the on-disk shape of a repository index.
type IndexFile struct {
	APIVersion string  `yaml:"apiVersion"`
	Entries    []entry `yaml:"entries"`
}

// LoadIndexFile parses path as a repository index file.
func LoadIndexFile(path string) (*IndexFile, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading index file %s", path)
	}
	return loadIndex(b, path)
}

func loadIndex(data []byte, path string) (*IndexFile, error) {
	idx := &IndexFile{}
	if err := yaml.Unmarshal(data, idx); err != nil {
		return nil, errors.Wrapf(err, "parsing index file %s", path)
	}
	if idx.APIVersion == "" {
		return nil, errors.Wrapf(ErrNoAPIVersion, "index file %s", path)
	}
	return idx, nil
}

// ToRepository converts a parsed index into a Repository, translating each
// entry into a *pkgmodel.Package. name is the repository's own name (not
// stored in the index file itself, since one index describes one
// repository by convention of where it's mounted).
func (idx *IndexFile) ToRepository(name string) *repository.Repository {
	r := repository.New(name)
	for _, e := range idx.Entries {
		p := pkgmodel.New(e.Name, e.Version, name).
			WithRequires(toLinks(e.Requires)...).
			WithConflicts(toLinks(e.Conflicts)...).
			WithProvides(toLinks(e.Provides)...).
			WithReplaces(toLinks(e.Replaces)...).
			WithRecommends(toLinks(e.Recommends)...).
			WithSuggests(toLinks(e.Suggests)...)
		r.Add(p)
	}
	return r
}

func toLinks(ls []link) []pkgmodel.Link {
	out := make([]pkgmodel.Link, len(ls))
	for i, l := range ls {
		out[i] = pkgmodel.Link{Name: l.Name, Constraint: l.Constraint}
	}
	return out
}

// Cache is a small digest-keyed cache directory: LoadRepository skips
// re-parsing an index file when a call for the same name in the same
// process already decoded that exact content, and serializes disk access
// across processes with a file lock so a concurrent reader never observes
// a half-written cache entry. The on-disk digest file records the last
// content seen for name across process runs; a fresh process still has to
// read and parse an index once before it can start skipping.
type Cache struct {
	Dir string

	mu      sync.Mutex
	decoded map[string]decodedRepo
}

type decodedRepo struct {
	digest string
	repo   *repository.Repository
}

// NewCache creates a Cache rooted at dir, creating dir if necessary.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating repoindex cache dir %s", dir)
	}
	return &Cache{Dir: dir, decoded: make(map[string]decodedRepo)}, nil
}

// LoadRepository loads name's index file at indexPath, skipping re-parsing
// when this Cache already decoded content with the same digest for name.
// The cache directory holds the lock file and the last-seen digest file.
func (c *Cache) LoadRepository(name, indexPath string) (*repository.Repository, error) {
	lockPath, err := securejoin.SecureJoin(c.Dir, name+".lock")
	if err != nil {
		return nil, errors.Wrapf(err, "resolving lock path for repository %s", name)
	}
	fl := flock.New(lockPath)
	if err := fl.Lock(); err != nil {
		return nil, errors.Wrapf(err, "locking repoindex cache for repository %s", name)
	}
	defer fl.Unlock() //nolint:errcheck

	data, err := ioutil.ReadFile(indexPath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading index file %s", indexPath)
	}
	sum := digest.FromBytes(data)

	c.mu.Lock()
	if cached, ok := c.decoded[name]; ok && cached.digest == sum.String() {
		c.mu.Unlock()
		return cached.repo, nil
	}
	c.mu.Unlock()

	digestPath, err := securejoin.SecureJoin(c.Dir, name+".digest")
	if err != nil {
		return nil, errors.Wrapf(err, "resolving digest path for repository %s", name)
	}

	idx, err := loadIndex(data, indexPath)
	if err != nil {
		return nil, err
	}
	if prior, err := ioutil.ReadFile(digestPath); err != nil || string(prior) != sum.String() {
		if err := ioutil.WriteFile(digestPath, []byte(sum.String()), 0o644); err != nil {
			return nil, errors.Wrapf(err, "writing digest for repository %s", name)
		}
	}

	repo := idx.ToRepository(name)
	c.mu.Lock()
	c.decoded[name] = decodedRepo{digest: sum.String(), repo: repo}
	c.mu.Unlock()
	return repo, nil
}
