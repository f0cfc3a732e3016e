// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package compiler

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/crypto/sha3"

	"github.com/weavelang/weave/lang"
)

// fileIdentity is the cache key for a resolved, parsed source file: the
// sha3-256 hash of its canonical absolute path concatenated with its raw
// contents. Hashing path+contents together (rather than contents alone)
// means the same text reached via two different relative routes is still
// cached once, while catching the pathological case of two distinct files
// that happen to share a path across an std/ffi root swap.
type fileIdentity [32]byte

func hashFile(absPath string, contents []byte) fileIdentity {
	h := sha3.New256()
	h.Write([]byte(absPath))
	h.Write([]byte{0})
	h.Write(contents)
	var out fileIdentity
	copy(out[:], h.Sum(nil))
	return out
}

func (id fileIdentity) String() string {
	return hex.EncodeToString(id[:8])
}

// Roots locates the three include namespaces (§4.6): std: resolves against
// StdlibRoot, ffi: is resolved by name through the ffi binding registry
// rather than the filesystem, and the quoted form resolves relative to the
// including file's own directory.
type Roots struct {
	StdlibRoot string
}

// Resolver walks a root source file's include graph into a single merged,
// de-duplicated list of SourceFiles in dependency order: a file's includes
// are resolved (and thus appear in the result) before the file itself, the
// same "leaves before dependents" order a recursive post-order walk
// naturally produces. This mirrors the cache-by-hash, resolve-once shape of
// Tosca's LFVM code converter (go/interpreter/lfvm/converter.go), adapted
// from "parsed bytecode by code hash" to "parsed source file by path+
// contents hash".
type Resolver struct {
	roots Roots
	cache *lru.Cache[fileIdentity, *SourceFile]

	visiting map[fileIdentity]bool
	visited  map[fileIdentity]bool
	order    []*SourceFile
}

// NewResolver creates a Resolver with a parse cache sized for a large
// standard library plus an application's own sources.
func NewResolver(roots Roots) *Resolver {
	cache, err := lru.New[fileIdentity, *SourceFile](1024)
	if err != nil {
		// Only returns an error for a non-positive size, which 1024 never is.
		panic(err)
	}
	return &Resolver{
		roots:    roots,
		cache:    cache,
		visiting: make(map[fileIdentity]bool),
		visited:  make(map[fileIdentity]bool),
	}
}

// Resolve parses rootPath and every file it transitively includes, and
// returns them in dependency order (includes before includers). FFI
// includes are recorded against the global ffi binding registry
// (lang.LookupFfiBinding) rather than resolved to a file.
func (r *Resolver) Resolve(rootPath string) ([]*SourceFile, error) {
	abs, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, err
	}
	if err := r.visit(abs, ""); err != nil {
		return nil, err
	}
	return r.order, nil
}

func (r *Resolver) visit(absPath string, fromDir string) error {
	if real, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = real
	}
	contents, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("%w: %s", lang.IncludeNotFound, absPath)
	}
	id := hashFile(absPath, contents)

	if r.visited[id] {
		return nil
	}
	if r.visiting[id] {
		return fmt.Errorf("include cycle detected at %s", absPath)
	}
	r.visiting[id] = true
	defer delete(r.visiting, id)

	sf, ok := r.cache.Get(id)
	if !ok {
		sf, err = parseFile(absPath, contents)
		if err != nil {
			return err
		}
		r.cache.Add(id, sf)
	}

	dir := filepath.Dir(absPath)
	for _, inc := range sf.Includes {
		if err := r.visitInclude(inc, dir); err != nil {
			return fmt.Errorf("%s:%d: %w", absPath, inc.Line, err)
		}
	}

	r.visited[id] = true
	r.order = append(r.order, sf)
	return nil
}

func (r *Resolver) visitInclude(inc Include, includerDir string) error {
	if strings.TrimSpace(inc.Target) == "" {
		return lang.EmptyIncludePath
	}

	switch inc.Kind {
	case IncludeFfi:
		if _, ok := lang.LookupFfiBinding(inc.Target); !ok {
			return fmt.Errorf("%w: %s", lang.UnknownFfi, inc.Target)
		}
		return nil

	case IncludeStd:
		if r.roots.StdlibRoot == "" {
			return fmt.Errorf("%w: no stdlib root configured for std:%s", lang.IncludeNotFound, inc.Target)
		}
		path := filepath.Join(r.roots.StdlibRoot, filepath.FromSlash(inc.Target)+".seq")
		return r.visit(mustAbs(path), includerDir)

	case IncludeRelative:
		if filepath.IsAbs(inc.Target) {
			return lang.AbsolutePathForbidden
		}
		path := filepath.Join(includerDir, filepath.FromSlash(inc.Target))
		return r.visit(mustAbs(path), includerDir)

	default:
		return fmt.Errorf("unknown include kind %d", inc.Kind)
	}
}

func mustAbs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
