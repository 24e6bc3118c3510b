package response

import "github.com/gin-gonic/gin"

// Bodies follow the dashboard contract: errors and simple results are
// `{"message": ...}`, composite results add their own fields.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
