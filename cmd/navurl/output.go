package main

import (
	"github.com/ghettovoice/navurl/query"
	"github.com/ghettovoice/navurl/uri"
)

type urlJSON struct {
	Href     string      `json:"href"`
	Protocol string      `json:"protocol,omitempty"`
	User     string      `json:"user,omitempty"`
	Pass     string      `json:"pass,omitempty"`
	Host     string      `json:"host,omitempty"`
	Port     string      `json:"port,omitempty"`
	Path     string      `json:"path"`
	Paths    []string    `json:"paths"`
	Query    []paramJSON `json:"query,omitempty"`
	Hash     string      `json:"hash,omitempty"`
	Absolute bool        `json:"absolute"`
}

type paramJSON struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

func newURLJSON(u *uri.URL) urlJSON {
	out := urlJSON{
		Href:     u.String(),
		Protocol: u.Protocol,
		User:     u.User,
		Pass:     u.Pass,
		Host:     u.Host,
		Port:     u.Port,
		Path:     u.Path,
		Paths:    u.Paths(),
		Hash:     u.Hash,
		Absolute: u.IsAbsolute(),
	}
	for k, v := range u.Query.All() {
		out.Query = append(out.Query, paramJSON{k, queryValueJSON(v)})
	}
	return out
}

// queryValueJSON maps null to JSON null, a scalar to a string and a list to an array.
func queryValueJSON(v query.Value) any {
	switch v.Kind() {
	case query.KindScalar:
		s, _ := v.Scalar()
		return s
	case query.KindList:
		return v.List()
	case query.KindAbsent:
		return ""
	default:
		return nil
	}
}
