// Package npm provides a registry client for npmjs.com.
//
// Two point queries are supported, matching the registry's package-metadata
// contract: GET /:package for the package document (dist-tags and the
// per-version publish-time map) and GET /:package/:version for the version
// document carrying the deprecation marker.
package npm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/git-pkgs/audit/client"
)

const DefaultURL = "https://registry.npmjs.org"

// Registry is a client for one npm-compatible registry.
type Registry struct {
	baseURL string
	client  *client.Client
	urls    *URLs
}

// New creates a registry client. If baseURL is empty, registry.npmjs.org is
// used. If c is nil, client.DefaultClient() is used.
func New(baseURL string, c *client.Client) *Registry {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if c == nil {
		c = client.DefaultClient()
	}
	r := &Registry{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  c,
	}
	r.urls = &URLs{baseURL: r.baseURL}
	return r
}

func (r *Registry) URLs() *URLs {
	return r.urls
}

// Metadata is the package document returned by GET /:package.
type Metadata struct {
	Name     string            `json:"name"`
	DistTags map[string]string `json:"dist-tags"`
	// Time maps version numbers to RFC 3339 publish timestamps. The
	// reserved "modified" key carries the registry's last-touch time.
	Time map[string]string `json:"time"`
}

// Latest returns the version number behind the "latest" dist-tag.
func (m *Metadata) Latest() string {
	return m.DistTags["latest"]
}

// PublishedAt returns the publish time of a version, if the version is
// present in the package's timetable.
func (m *Metadata) PublishedAt(version string) (time.Time, bool) {
	return m.timeAt(version)
}

// Modified returns the registry's last-touch timestamp for the package,
// used as the reference point for the latest version's age.
func (m *Metadata) Modified() (time.Time, bool) {
	return m.timeAt("modified")
}

func (m *Metadata) timeAt(key string) (time.Time, bool) {
	raw, ok := m.Time[key]
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// VersionInfo is the version document returned by GET /:package/:version.
type VersionInfo struct {
	Name       string       `json:"name"`
	Version    string       `json:"version"`
	Deprecated *Deprecation `json:"deprecated"`
}

// Deprecation models the polymorphic "deprecated" field of a version
// document: either a message string or a bare boolean. A nil *Deprecation
// means the field was absent.
type Deprecation struct {
	message string
	flag    bool
	isMsg   bool
}

// MessageDeprecation returns a marker for a string-valued field.
func MessageDeprecation(msg string) *Deprecation {
	return &Deprecation{message: msg, isMsg: true}
}

// FlagDeprecation returns a marker for a boolean-valued field.
func FlagDeprecation(flag bool) *Deprecation {
	return &Deprecation{flag: flag}
}

// Active reports whether the marker actually deprecates the version: any
// message does, a boolean only when true.
func (d *Deprecation) Active() bool {
	if d == nil {
		return false
	}
	return d.isMsg || d.flag
}

// Message returns the deprecation notice, empty for boolean markers.
func (d *Deprecation) Message() string {
	if d == nil {
		return ""
	}
	return d.message
}

// UnmarshalJSON tries the string form first, then the boolean form.
func (d *Deprecation) UnmarshalJSON(data []byte) error {
	var msg string
	if err := json.Unmarshal(data, &msg); err == nil {
		d.message = msg
		d.isMsg = true
		return nil
	}
	var flag bool
	if err := json.Unmarshal(data, &flag); err == nil {
		d.flag = flag
		d.isMsg = false
		return nil
	}
	return fmt.Errorf("deprecated field is neither string nor bool: %s", data)
}

// MarshalJSON emits the same wire form the registry uses.
func (d *Deprecation) MarshalJSON() ([]byte, error) {
	if d.isMsg {
		return json.Marshal(d.message)
	}
	return json.Marshal(d.flag)
}

// LookupError wraps any failure to fetch or parse registry data for one
// package (or package version).
type LookupError struct {
	Name    string
	Version string
	Err     error
}

func (e *LookupError) Error() string {
	if e.Version != "" {
		return fmt.Sprintf("npm: lookup %s@%s: %v", e.Name, e.Version, e.Err)
	}
	return fmt.Sprintf("npm: lookup %s: %v", e.Name, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

var errInvalidDocument = errors.New("registry response missing name")

// FetchMetadata retrieves the package document for name.
func (r *Registry) FetchMetadata(ctx context.Context, name string) (*Metadata, error) {
	fetchURL := fmt.Sprintf("%s/%s", r.baseURL, url.PathEscape(name))

	var meta Metadata
	if err := r.client.GetJSON(ctx, fetchURL, &meta); err != nil {
		return nil, &LookupError{Name: name, Err: err}
	}
	// Error documents ({"error": "Not found"}) parse cleanly but carry no name.
	if meta.Name == "" {
		return nil, &LookupError{Name: name, Err: errInvalidDocument}
	}
	return &meta, nil
}

// FetchVersion retrieves the version document for an exact name/version pair.
func (r *Registry) FetchVersion(ctx context.Context, name, version string) (*VersionInfo, error) {
	fetchURL := fmt.Sprintf("%s/%s/%s", r.baseURL, url.PathEscape(name), url.PathEscape(version))

	var info VersionInfo
	if err := r.client.GetJSON(ctx, fetchURL, &info); err != nil {
		return nil, &LookupError{Name: name, Version: version, Err: err}
	}
	if info.Name == "" {
		return nil, &LookupError{Name: name, Version: version, Err: errInvalidDocument}
	}
	return &info, nil
}
