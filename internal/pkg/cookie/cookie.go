package cookie

import (
	"github.com/gin-gonic/gin"
)

// The engine never issues tokens; the identity provider in front of it
// sets this cookie. Only the read side is needed here.
const AccessTokenCookieName = "access_token"

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
