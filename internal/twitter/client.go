// Package twitter is a minimal Twitter REST v1.1 client covering search,
// status updates, retweets and media upload.
package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
)

const (
	defaultAPIBase    = "https://api.twitter.com/1.1"
	defaultUploadBase = "https://upload.twitter.com/1.1"
	defaultTimeout    = 30 * time.Second

	// CreatedAtLayout is the timestamp format of created_at fields.
	CreatedAtLayout = "Mon Jan 02 15:04:05 -0700 2006"
)

// Credentials are the pre-obtained OAuth 1.0a user-context tokens.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	AccessKey      string
	AccessSecret   string
}

// Client talks to the Twitter API on behalf of one account.
type Client struct {
	httpClient *http.Client
	apiBase    string
	uploadBase string
}

// NewClient creates a client that signs every request with creds.
func NewClient(creds Credentials, timeout time.Duration) (*Client, error) {
	if creds.ConsumerKey == "" || creds.ConsumerSecret == "" || creds.AccessKey == "" || creds.AccessSecret == "" {
		return nil, errors.New("twitter: consumer key/secret and access key/secret are required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	cfg := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	token := oauth1.NewToken(creds.AccessKey, creds.AccessSecret)
	base := &http.Client{Timeout: timeout}
	ctx := context.WithValue(context.Background(), oauth1.HTTPClient, base)

	httpClient := cfg.Client(ctx, token)
	httpClient.Timeout = timeout

	return &Client{
		httpClient: httpClient,
		apiBase:    defaultAPIBase,
		uploadBase: defaultUploadBase,
	}, nil
}

// User is the author of a tweet.
type User struct {
	ScreenName     string
	FollowersCount int
}

// Tweet is a status as returned by the API.
type Tweet struct {
	ID                  string
	Text                string
	CreatedAt           time.Time
	InReplyToStatusID   string
	InReplyToUserID     string
	InReplyToScreenName string
	Retweeted           bool
	User                User
}

// IsReply reports whether the tweet replies to another tweet or user.
func (t Tweet) IsReply() bool {
	return t.InReplyToStatusID != "" || t.InReplyToUserID != "" || t.InReplyToScreenName != ""
}

// SearchParams configures a search/tweets request.
type SearchParams struct {
	Query string
	Lang  string
	Count int
}

// StatusUpdate is the body of a statuses/update request.
type StatusUpdate struct {
	Text        string
	InReplyToID string
	MediaIDs    []string
}

// APIError is returned for non-2xx responses.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("twitter API error (status %d): %s", e.Status, e.Body)
}

// Search runs a standard search and returns the matching statuses.
func (c *Client) Search(ctx context.Context, p SearchParams) ([]Tweet, error) {
	q := url.Values{}
	q.Set("q", p.Query)
	if p.Lang != "" {
		q.Set("lang", p.Lang)
	}
	if p.Count > 0 {
		q.Set("count", strconv.Itoa(p.Count))
	}
	q.Set("result_type", "recent")

	var resp searchResponse
	if err := c.do(ctx, http.MethodGet, c.apiBase+"/search/tweets.json?"+q.Encode(), nil, "", &resp); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	tweets := make([]Tweet, 0, len(resp.Statuses))
	for _, s := range resp.Statuses {
		t, err := s.toTweet()
		if err != nil {
			return nil, fmt.Errorf("search: %w", err)
		}
		tweets = append(tweets, t)
	}
	return tweets, nil
}

// UpdateStatus posts a new status, optionally as a reply and with media.
func (c *Client) UpdateStatus(ctx context.Context, u StatusUpdate) (Tweet, error) {
	form := url.Values{}
	form.Set("status", u.Text)
	if u.InReplyToID != "" {
		form.Set("in_reply_to_status_id", u.InReplyToID)
	}
	if len(u.MediaIDs) > 0 {
		form.Set("media_ids", strings.Join(u.MediaIDs, ","))
	}

	var s rawStatus
	err := c.do(ctx, http.MethodPost, c.apiBase+"/statuses/update.json",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &s)
	if err != nil {
		return Tweet{}, fmt.Errorf("update status: %w", err)
	}
	return s.toTweet()
}

// Retweet reposts the status with the given ID.
func (c *Client) Retweet(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("retweet: id is required")
	}
	endpoint := fmt.Sprintf("%s/statuses/retweet/%s.json", c.apiBase, url.PathEscape(id))
	if err := c.do(ctx, http.MethodPost, endpoint, nil, "", nil); err != nil {
		return fmt.Errorf("retweet %s: %w", id, err)
	}
	return nil
}

// UploadMedia uploads the image at path and returns its media ID.
func (c *Client) UploadMedia(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read media: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("media", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	var resp uploadResponse
	if err := c.do(ctx, http.MethodPost, c.uploadBase+"/media/upload.json", &buf, mw.FormDataContentType(), &resp); err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}
	if resp.MediaIDString == "" {
		return "", errors.New("upload media: empty media_id_string")
	}
	return resp.MediaIDString, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, contentType string, result any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

type searchResponse struct {
	Statuses []rawStatus `json:"statuses"`
}

type rawStatus struct {
	IDStr                string `json:"id_str"`
	Text                 string `json:"text"`
	FullText             string `json:"full_text"`
	CreatedAt            string `json:"created_at"`
	InReplyToStatusIDStr string `json:"in_reply_to_status_id_str"`
	InReplyToUserIDStr   string `json:"in_reply_to_user_id_str"`
	InReplyToScreenName  string `json:"in_reply_to_screen_name"`
	RetweetedStatus      *struct {
		IDStr string `json:"id_str"`
	} `json:"retweeted_status"`
	User struct {
		ScreenName     string `json:"screen_name"`
		FollowersCount int    `json:"followers_count"`
	} `json:"user"`
}

func (s rawStatus) toTweet() (Tweet, error) {
	var createdAt time.Time
	if s.CreatedAt != "" {
		var err error
		createdAt, err = time.Parse(CreatedAtLayout, s.CreatedAt)
		if err != nil {
			return Tweet{}, fmt.Errorf("parse created_at %q: %w", s.CreatedAt, err)
		}
	}
	text := s.FullText
	if text == "" {
		text = s.Text
	}
	return Tweet{
		ID:                  s.IDStr,
		Text:                text,
		CreatedAt:           createdAt,
		InReplyToStatusID:   s.InReplyToStatusIDStr,
		InReplyToUserID:     s.InReplyToUserIDStr,
		InReplyToScreenName: s.InReplyToScreenName,
		Retweeted:           s.RetweetedStatus != nil,
		User: User{
			ScreenName:     s.User.ScreenName,
			FollowersCount: s.User.FollowersCount,
		},
	}, nil
}

type uploadResponse struct {
	MediaIDString string `json:"media_id_string"`
}
