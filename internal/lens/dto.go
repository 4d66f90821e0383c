package lens

import "time"

// pageInfo carries the cursors flanking one page of results
type pageInfo struct {
	Next string `json:"next"`
	Prev string `json:"prev"`
}

type paginatedAccounts struct {
	Items    []accountDTO `json:"items"`
	PageInfo pageInfo     `json:"pageInfo"`
}

type paginatedPosts struct {
	Items    []postDTO `json:"items"`
	PageInfo pageInfo  `json:"pageInfo"`
}

type accountDTO struct {
	Address   string       `json:"address"`
	Owner     string       `json:"owner"`
	Score     int          `json:"score"`
	CreatedAt time.Time    `json:"createdAt"`
	Username  *usernameDTO `json:"username"`
	Metadata  *struct {
		Name         string `json:"name"`
		Bio          string `json:"bio"`
		Picture      string `json:"picture"`
		CoverPicture string `json:"coverPicture"`
	} `json:"metadata"`
	Operations *struct {
		IsFollowedByMe bool `json:"isFollowedByMe"`
		IsFollowingMe  bool `json:"isFollowingMe"`
	} `json:"operations"`
}

type usernameDTO struct {
	LocalName string `json:"localName"`
	Namespace string `json:"namespace"`
}

type accountStatsDTO struct {
	GraphFollowStats struct {
		Followers int `json:"followers"`
		Following int `json:"following"`
	} `json:"graphFollowStats"`
	FeedStats struct {
		Posts     int `json:"posts"`
		Comments  int `json:"comments"`
		Reposts   int `json:"reposts"`
		Quotes    int `json:"quotes"`
		Reacted   int `json:"reacted"`
		Reactions int `json:"reactions"`
		Collects  int `json:"collects"`
	} `json:"feedStats"`
}

type postDTO struct {
	ID         string     `json:"id"`
	Timestamp  time.Time  `json:"timestamp"`
	ContentURI string     `json:"contentUri"`
	IsDeleted  bool       `json:"isDeleted"`
	IsEdited   bool       `json:"isEdited"`
	Author     accountDTO `json:"author"`
	Metadata   *struct {
		Content     string          `json:"content"`
		Tags        []string        `json:"tags"`
		Attachments []attachmentDTO `json:"attachments"`
	} `json:"metadata"`
	Stats struct {
		Upvotes   int `json:"upvotes"`
		Comments  int `json:"comments"`
		Reposts   int `json:"reposts"`
		Quotes    int `json:"quotes"`
		Bookmarks int `json:"bookmarks"`
		Collects  int `json:"collects"`
		Tips      int `json:"tips"`
	} `json:"stats"`
	Operations *struct {
		HasUpvoted    bool `json:"hasUpvoted"`
		HasReposted   bool `json:"hasReposted"`
		HasBookmarked bool `json:"hasBookmarked"`
	} `json:"operations"`

	// One referencing level deep; the API does not nest further
	RepostOf  *postDTO `json:"repostOf"`
	CommentOn *postDTO `json:"commentOn"`
}

type attachmentDTO struct {
	Item   string `json:"item"`
	Type   string `json:"type"`
	AltTag string `json:"altTag"`
}

// mutationResult covers the response unions: a success branch with a hash
// or success flag, or a failure branch with a reason.
type mutationResult struct {
	Hash    string `json:"hash"`
	Success bool   `json:"success"`
	Reason  string `json:"reason"`
}

type challengeDTO struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Code      string    `json:"code"`
	VerifyURL string    `json:"verifyUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type authTokensDTO struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	IDToken      string    `json:"idToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	Account      string    `json:"account"`
	Reason       string    `json:"reason"`
}
