package dto

// ListParams carries offset pagination query parameters.
type ListParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// KeysetListParams carries keyset pagination query parameters.
type KeysetListParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}
