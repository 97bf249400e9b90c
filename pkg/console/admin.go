package console

import (
	"errors"

	"cafe/pkg/auth"
	"cafe/pkg/session"
)

// enterAdmin resumes a live session or asks the user to log in or register.
func (c *Console) enterAdmin() error {
	if st := c.sessions.Check(c.now()); st.Valid {
		c.printf("Welcome back, %s!\n", st.Username)
		return c.adminMenu()
	}
	loggedIn := false
	err := c.menuLoop("Admin Access", "Back", func() bool { return !loggedIn }, []action{
		{"1", "Login", func() error {
			ok, err := c.login()
			if err != nil || !ok {
				return err
			}
			loggedIn = true
			return c.adminMenu()
		}},
		{"2", "Register", c.register},
	})
	return err
}

func (c *Console) login() (bool, error) {
	username, err := c.askRequired("Username")
	if err != nil {
		return false, err
	}
	password, err := c.askRequired("Password")
	if err != nil {
		return false, err
	}
	if _, err := c.users.Login(username, password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.println("Username or password is invalid, try again!")
			return false, nil
		}
		return false, err
	}
	if err := c.sessions.Create(username, c.now()); err != nil {
		return false, err
	}
	c.printf("Logged in as %s. Session valid for %s.\n", username, c.sessions.Duration())
	return true, nil
}

func (c *Console) register() error {
	username, err := c.askRequired("Choose a username")
	if err != nil {
		return err
	}
	c.println("Password: 8-12 characters with an uppercase letter, a lowercase letter and a number.")
	password, err := c.askRequired("Choose a password")
	if err != nil {
		return err
	}
	if _, err := c.users.Register(username, password); err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			c.println("Username already exists, try another!")
			return nil
		}
		return err
	}
	c.println("User registered successfully. You can log in now.")
	return nil
}

// checkpoint re-validates the session whenever control returns to the admin menu.
func (c *Console) checkpoint() bool {
	st := c.sessions.Check(c.now())
	if !st.Valid {
		if st.Expired {
			c.println("SESSION EXPIRED. Please login again to continue.")
		}
		return false
	}
	if w := session.Warning(st.Remaining); w != "" {
		c.println("WARNING: " + w)
	}
	return true
}

func (c *Console) adminMenu() error {
	return c.menuLoop("Admin Menu", "Back to Main Menu", c.checkpoint, []action{
		{"1", "Menu Items & Categories", c.itemsAndCategories},
		{"2", "Order Management", c.orderManagement},
		{"3", "Sales Analytics", c.analyticsMenu},
		{"4", "Dashboard", c.dashboard},
		{"5", "Logout", c.logout},
	})
}

func (c *Console) logout() error {
	if err := c.sessions.Clear(); err != nil {
		return err
	}
	c.println("Logged out.")
	return nil
}
