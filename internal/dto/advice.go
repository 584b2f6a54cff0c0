package dto

type AdviceRequest struct {
	Query string `json:"query"`
}

type SuggestCategoryRequest struct {
	Name string `json:"name"`
}

type SuggestCategoryResponse struct {
	Category string `json:"category"`
}
