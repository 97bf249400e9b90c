package console

import (
	"io"
	"strconv"
	"strings"

	"cafe/pkg/domain"
)

// ask prints label and returns the trimmed next line; io.EOF when input ends.
func (c *Console) ask(label string) (string, error) {
	if err := c.ctx.Err(); err != nil {
		return "", err
	}
	c.printf("%s: ", label)
	select {
	case <-c.ctx.Done():
		c.println("")
		return "", c.ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			c.println("")
			if c.readErr != nil {
				return "", c.readErr
			}
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

func (c *Console) askRequired(label string) (string, error) {
	for {
		v, err := c.ask(label)
		if err != nil || v != "" {
			return v, err
		}
		c.println("Value cannot be empty.")
	}
}

func (c *Console) askYesNo(label string) (bool, error) {
	for {
		v, err := c.ask(label + " (y/n)")
		if err != nil {
			return false, err
		}
		if b, ok := parseBool(v); ok {
			return b, nil
		}
		c.println("Please enter 'y' or 'n'.")
	}
}

// askOptionalBool returns nil for a blank answer.
func (c *Console) askOptionalBool(label string) (*bool, error) {
	for {
		v, err := c.ask(label + " (y/n, Enter to skip)")
		if err != nil || v == "" {
			return nil, err
		}
		if b, ok := parseBool(v); ok {
			return &b, nil
		}
		c.println("Please enter 'y' or 'n'.")
	}
}

func parseBool(v string) (bool, bool) {
	switch strings.ToLower(v) {
	case "y", "yes", "true", "1":
		return true, true
	case "n", "no", "false", "0":
		return false, true
	}
	return false, false
}

// askPrice returns nil for a blank answer when optional.
func (c *Console) askPrice(label string, optional bool) (*float64, error) {
	for {
		v, err := c.ask(label)
		if err != nil {
			return nil, err
		}
		if v == "" && optional {
			return nil, nil
		}
		p, perr := strconv.ParseFloat(v, 64)
		switch {
		case perr != nil:
			c.println("Please enter a valid number.")
		case p <= 0:
			c.println("Price must be greater than 0.")
		default:
			return &p, nil
		}
	}
}

func (c *Console) askQty(label string) (int, error) {
	for {
		v, err := c.ask(label)
		if err != nil {
			return 0, err
		}
		n, perr := strconv.Atoi(v)
		switch {
		case perr != nil:
			c.println("Please enter a valid number.")
		case n < 1:
			c.println("Quantity must be greater than 0.")
		default:
			return n, nil
		}
	}
}

// askDate returns "" for a blank answer when optional.
func (c *Console) askDate(label string, optional bool) (string, error) {
	for {
		v, err := c.ask(label + " (YYYY-MM-DD)")
		if err != nil || (v == "" && optional) {
			return "", err
		}
		if _, perr := domain.ParseDate(v); perr != nil {
			c.println(perr.Error())
			continue
		}
		return v, nil
	}
}

func (c *Console) askMonth(label string, optional bool) (string, error) {
	for {
		v, err := c.ask(label + " (YYYY-MM)")
		if err != nil || (v == "" && optional) {
			return "", err
		}
		if _, perr := domain.ParseMonth(v); perr != nil {
			c.println(perr.Error())
			continue
		}
		return v, nil
	}
}

func (c *Console) askStatus(label string, optional bool) (domain.Status, error) {
	for {
		v, err := c.ask(label + " (placed, in progress, completed, cancelled)")
		if err != nil || (v == "" && optional) {
			return "", err
		}
		st, perr := domain.ParseStatus(v)
		if perr != nil {
			c.println(perr.Error())
			continue
		}
		return st, nil
	}
}

// askItemID reads an identifier and checks it against the menu.
func (c *Console) askItemID(label string) (string, bool, error) {
	id, err := c.askRequired(label)
	if err != nil {
		return "", false, err
	}
	if _, ok := c.catalog.Item(id); !ok {
		c.printf("Item ID '%s' not found.\n", id)
		return id, false, nil
	}
	return id, true, nil
}

func (c *Console) askOrderID(label string) (string, bool, error) {
	id, err := c.askRequired(label)
	if err != nil {
		return "", false, err
	}
	if _, ok := c.ledger.Order(id); !ok {
		c.println("No such order found.")
		return id, false, nil
	}
	return id, true, nil
}
