package response

import "github.com/gin-gonic/gin"

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondPage writes a paginated success payload in the shape list
// endpoints share: data, total, page, limit at the top level.
func RespondPage(c *gin.Context, code int, data interface{}, total int64, page, limit int) {
	c.JSON(code, PaginatedResponse{
		Data:  data,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
