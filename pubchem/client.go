/*
 * client.go, part of goccd.
 *
 * Copyright 2024 The goccd Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package pubchem is a small client for the PubChem PUG REST service and a batch
// downloader of 2D structure templates for chemical components.
package pubchem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the root of the PUG REST service.
const DefaultBaseURL = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"

// ErrNotFound is returned when PubChem has no compound for a query.
var ErrNotFound = errors.New("pubchem: compound not found")

// HTTPError is returned when the service answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (err *HTTPError) Error() string {
	return fmt.Sprintf("pubchem: %s returned %d %s", err.URL, err.StatusCode, http.StatusText(err.StatusCode))
}

// Client queries PUG REST. The zero value uses DefaultBaseURL and a client with a
// 60 s timeout.
type Client struct {
	BaseURL   string
	HTTP      *http.Client
	UserAgent string
}

var defaultHTTP = &http.Client{Timeout: 60 * time.Second}

func (C *Client) base() string {
	if C.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(C.BaseURL, "/")
}

// get performs a GET request to u and returns the response, which
// is guaranteed to have a 2xx status. The caller closes the body.
func (C *Client) get(ctx context.Context, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if C.UserAgent != "" {
		req.Header.Set("User-Agent", C.UserAgent)
	}
	hc := C.HTTP
	if hc == nil {
		hc = defaultHTTP
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		//drain a little so the connection can be reused.
		io.CopyN(io.Discard, resp.Body, 4096)
		resp.Body.Close()
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: u}
	}
	return resp, nil
}

type cidsResponse struct {
	IdentifierList struct {
		CID []int `json:"CID"`
	} `json:"IdentifierList"`
}

// CIDs returns the PubChem compound identifiers matching the InChIKey key.
func (C *Client) CIDs(ctx context.Context, key string) ([]int, error) {
	if key == "" {
		return nil, fmt.Errorf("CIDs: empty InChIKey")
	}
	u := C.base() + "/compound/inchikey/" + url.PathEscape(key) + "/cids/json"
	resp, err := C.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("CIDs: %w", err)
	}
	defer resp.Body.Close()
	var out cidsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("CIDs: decoding answer for %s: %w", key, err)
	}
	if len(out.IdentifierList.CID) == 0 {
		return nil, fmt.Errorf("CIDs: %s: %w", key, ErrNotFound)
	}
	return out.IdentifierList.CID, nil
}

// Record2D streams the 2D SDF record of the compound cid to w. basename is the
// file name PubChem suggests for the download.
func (C *Client) Record2D(ctx context.Context, cid int, basename string, w io.Writer) error {
	u := C.base() + "/compound/cid/" + strconv.Itoa(cid) + "/record/SDF/?record_type=2d&response_type=save&response_basename=" + url.QueryEscape(basename)
	resp, err := C.get(ctx, u)
	if err != nil {
		return fmt.Errorf("Record2D: %w", err)
	}
	defer resp.Body.Close()
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("Record2D: reading record %d: %w", cid, err)
	}
	return nil
}
