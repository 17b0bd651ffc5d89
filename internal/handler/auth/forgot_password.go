package auth

import (
	"fmt"
	"net/http"
	"strings"

	"tourbase/internal/api"
	"tourbase/internal/apperr"
	"tourbase/internal/database"
	"tourbase/internal/mailer"
	"tourbase/internal/worker"

	"github.com/labstack/echo/v4"
)

// ForgotPasswordHandler 產生密碼重設令牌並以 email 寄出重設連結
// 寄信失敗時清掉重設欄位再回錯誤，避免留下寄不出去的死令牌
// @Summary     Forgot password
// @Description 寄出含重設令牌的 email，令牌十分鐘內有效
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body api.ForgotPasswordRequest true "帳號 Email"
// @Success     200  {object} api.Envelope
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /users/forgotPassword [post]
func ForgotPasswordHandler(db database.DB, m mailer.Mailer, pool worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.ForgotPasswordRequest
		if err := c.Bind(&req); err != nil {
			return apperr.BadRequest("Invalid request body.")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}

		ctx := c.Request().Context()
		user, err := getUserByEmail(ctx, db, strings.ToLower(req.Email))
		if err != nil {
			return apperr.NotFound("There is no user with that email address.")
		}

		plain, hash, expiry, err := newResetToken()
		if err != nil {
			return apperr.Wrap(err)
		}
		if err := setPasswordResetToken(ctx, db, user.ID, hash, expiry); err != nil {
			return err
		}

		resetURL := fmt.Sprintf("%s://%s/api/v1/users/resetPassword/%s", c.Scheme(), c.Request().Host, plain)
		email := mailer.Email{
			To:      user.Email,
			Subject: "Your password reset token (valid for 10 minutes)",
			Body: fmt.Sprintf(
				"Forgot your password? Submit a PATCH request with your new password and password confirm to: %s\nIf you didn't forget your password, please ignore this email.",
				resetURL,
			),
		}

		// 寄信走工作者池，但請求要等結果才能決定回應
		sendErr := make(chan error, 1)
		pool.Submit(func() { sendErr <- m.Send(email) })
		if err := <-sendErr; err != nil {
			if clearErr := clearPasswordResetToken(ctx, db, user.ID); clearErr != nil {
				c.Logger().Errorf("clear reset token for user %d: %v", user.ID, clearErr)
			}
			return apperr.Internal("There was an error sending the email. Try again later.")
		}

		return c.JSON(http.StatusOK, api.Envelope{
			Status:  api.StatusSuccess,
			Message: "Token sent to email.",
		})
	}
}
