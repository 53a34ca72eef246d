package models

// FeedPost is a post with author info and viewer-specific flags
type FeedPost struct {
	Post
	AuthorInfo UserCompact `json:"author"`
	LikeCount  int64       `json:"like_count"`
	IsLiked    bool        `json:"is_liked"`
}

// Feed is what a viewer sees on the home page
type Feed struct {
	Posts          []FeedPost `json:"posts"`
	Total          int64      `json:"total"`
	FollowingCount int64      `json:"following_count"`
	FollowerCount  int64      `json:"follower_count"`
}

// Page selects a window of an ordered listing. A zero Limit means no limit.
type Page struct {
	Offset int
	Limit  int
}
