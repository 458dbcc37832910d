package feed

type CreatePostRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=2000"`
	ImageURL string `json:"image_url" validate:"omitempty,url,max=500"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

type FeedQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}
