package wordpress

import "time"

// Post is the normalized shape of a WordPress post.
type Post struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Status        string    `json:"status"`
	Link          string    `json:"link"`
	FeaturedMedia int       `json:"featured_media"`
	Date          time.Time `json:"date"`
	Modified      time.Time `json:"modified"`
}

// Media is the normalized shape of a WordPress media item.
type Media struct {
	ID        int    `json:"id"`
	SourceURL string `json:"source_url"`
	Link      string `json:"link"`
	MimeType  string `json:"mime_type"`
}

// User is the normalized shape of a WordPress user.
type User struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// CreatePostRequest contains the fields sent to the posts endpoint.
type CreatePostRequest struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Status        string `json:"status"`
	FeaturedMedia int    `json:"featured_media,omitempty"`
}

// rendered is WordPress's wrapper around renderable fields.
type rendered struct {
	Rendered string `json:"rendered"`
}

// wirePost is the raw posts endpoint payload.
type wirePost struct {
	ID            int      `json:"id"`
	Title         rendered `json:"title"`
	Status        string   `json:"status"`
	Link          string   `json:"link"`
	FeaturedMedia int      `json:"featured_media"`
	DateGMT       string   `json:"date_gmt"`
	ModifiedGMT   string   `json:"modified_gmt"`
}

// wireMedia is the raw media endpoint payload.
type wireMedia struct {
	ID        int    `json:"id"`
	SourceURL string `json:"source_url"`
	Link      string `json:"link"`
	MimeType  string `json:"mime_type"`
}

// wireError is the WordPress REST error envelope.
type wireError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// wpTimeLayout is the timestamp format of *_gmt fields.
const wpTimeLayout = "2006-01-02T15:04:05"

func (p wirePost) normalize() *Post {
	date, _ := time.Parse(wpTimeLayout, p.DateGMT)
	modified, _ := time.Parse(wpTimeLayout, p.ModifiedGMT)

	return &Post{
		ID:            p.ID,
		Title:         p.Title.Rendered,
		Status:        p.Status,
		Link:          p.Link,
		FeaturedMedia: p.FeaturedMedia,
		Date:          date,
		Modified:      modified,
	}
}

func (m wireMedia) normalize() *Media {
	return &Media{
		ID:        m.ID,
		SourceURL: m.SourceURL,
		Link:      m.Link,
		MimeType:  m.MimeType,
	}
}
