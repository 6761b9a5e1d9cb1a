package dto

// UpdateImageRequest edits the metadata of a stored image
type UpdateImageRequest struct {
	FileName *string  `json:"file_name" binding:"omitempty,max=200"`
	Category *string  `json:"category" binding:"omitempty,max=50"`
	Tags     []string `json:"tags" binding:"omitempty,max=20,dive,max=50"`
}

// ImageListFilter narrows the image library listing
type ImageListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Tag      string `form:"tag"`
}
