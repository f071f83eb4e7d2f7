package handlers

import (
	"net/http"

	"task_manager/internal/http/flash"
	"task_manager/internal/http/forms"
	"task_manager/internal/logger"
	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ShowSignup(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{
		"Flash":        flash.Pop(c),
		"Errors":       service.FieldErrors{},
		"Form":         forms.SignupForm{},
		"PasswordHelp": h.Accounts.Policy().Describe(),
	})
}

func (h *Handler) Signup(c *gin.Context) {
	form := forms.SignupForm{
		Username:        c.PostForm("username"),
		Email:           c.PostForm("email"),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirm_password"),
	}

	fieldErrs := form.Validate()
	if fieldErrs.Empty() {
		user, signupErrs, err := h.Accounts.SignUp(c.Request.Context(), service.SignUpInput{
			Username:        form.Username,
			Email:           form.Email,
			Password:        form.Password,
			ConfirmPassword: form.ConfirmPassword,
		})
		if err != nil {
			logger.Error("signup failed", "error", err)
			c.HTML(http.StatusInternalServerError, "signup.html", gin.H{
				"Flash":        &flash.Message{Category: flash.Error, Text: "Something went wrong. Please try again."},
				"Errors":       service.FieldErrors{},
				"Form":         form,
				"PasswordHelp": h.Accounts.Policy().Describe(),
			})
			return
		}
		if user != nil {
			// Account created; the user logs in explicitly, no session yet.
			flash.Set(c, flash.Success, "Account created successfully. Please log in.")
			c.Redirect(http.StatusFound, "/login")
			return
		}
		fieldErrs = signupErrs
	}

	c.HTML(http.StatusOK, "signup.html", gin.H{
		"Errors":       fieldErrs,
		"Form":         form,
		"PasswordHelp": h.Accounts.Policy().Describe(),
	})
}

func (h *Handler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Flash":  flash.Pop(c),
		"Errors": service.FieldErrors{},
		"Form":   forms.LoginForm{},
	})
}

func (h *Handler) Login(c *gin.Context) {
	form := forms.LoginForm{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	}

	fieldErrs := form.Validate()
	if fieldErrs.Empty() {
		user, authErrs, err := h.Accounts.Authenticate(c.Request.Context(), form.Username, form.Password)
		if err != nil {
			logger.Error("login failed", "error", err)
			c.HTML(http.StatusInternalServerError, "login.html", gin.H{
				"Flash":  &flash.Message{Category: flash.Error, Text: "Something went wrong. Please try again."},
				"Errors": service.FieldErrors{},
				"Form":   form,
			})
			return
		}
		if user != nil {
			token, err := h.Sessions.Issue(user.ID)
			if err != nil {
				logger.Error("session issue failed", "error", err)
				c.HTML(http.StatusInternalServerError, "login.html", gin.H{
					"Flash":  &flash.Message{Category: flash.Error, Text: "Something went wrong. Please try again."},
					"Errors": service.FieldErrors{},
					"Form":   form,
				})
				return
			}
			// Any previous session cookie is simply overwritten.
			c.SetCookie(service.CookieName, token, int(h.Sessions.TTL().Seconds()), "/", "", false, true)
			c.Redirect(http.StatusFound, "/tasks")
			return
		}
		fieldErrs = authErrs
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"Errors": fieldErrs,
		"Form":   form,
	})
}

// Logout clears the session cookie. Logging out without a session is a
// no-op, not an error.
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(service.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}
