package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hufspace/hufspace-cli/pkg/calculator"
)

// pressForm is the keypad state round-tripped through the page, plus the
// button that was pressed.
type pressForm struct {
	Display  string `form:"display"`
	Operator string `form:"operator"`
	First    string `form:"first"`
	Reset    bool   `form:"reset"`
	Key      string `form:"key" binding:"required"`
}

func (f pressForm) state() (calculator.State, error) {
	s := calculator.State{
		Display:      f.Display,
		ResetDisplay: f.Reset,
	}
	if f.Operator != "" {
		op, err := calculator.ParseOperator(f.Operator)
		if err != nil {
			return calculator.State{}, err
		}
		s.Operator = op
	}
	if f.First != "" {
		v := calculator.ParseNumber(f.First)
		s.FirstOperand = &v
	}
	if s.Operator != calculator.NoOperator && s.FirstOperand == nil {
		return calculator.State{}, errors.New("operator without first operand")
	}
	return s, nil
}

type button struct {
	Token string
	Label string
	Class string
}

type page struct {
	Display  string
	Operator string
	First    string
	Reset    string
	Alert    string
	Rows     [][]button
}

func newPage(s calculator.State) page {
	p := page{
		Display:  s.Display,
		Operator: s.Operator.Symbol(),
		Reset:    strconv.FormatBool(s.ResetDisplay),
	}
	if s.FirstOperand != nil {
		p.First = calculator.FormatNumber(*s.FirstOperand)
	}
	for _, row := range calculator.Keypad {
		var buttons []button
		for _, k := range row {
			b := button{Token: k.Token(), Label: k.Label()}
			switch k.Kind {
			case calculator.KeyOperator:
				b.Class = "operator"
				if k.Operator == s.Operator {
					b.Class += " active"
				}
			case calculator.KeyEquals:
				b.Class = "equals"
			case calculator.KeyClear, calculator.KeyDelete:
				b.Class = "control"
			}
			buttons = append(buttons, b)
		}
		p.Rows = append(p.Rows, buttons)
	}
	return p
}

func (s *Server) getIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html.tmpl", newPage(calculator.InitialState()))
}

func (s *Server) postPress(c *gin.Context) {
	var form pressForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err)
		return
	}

	state, err := form.state()
	if err != nil {
		badRequest(c, err)
		return
	}
	key, err := calculator.ParseKey(form.Key)
	if err != nil {
		badRequest(c, err)
		return
	}

	calc := calculator.FromState(state)
	pressErr := calc.Press(key)
	p := newPage(calc.Snapshot())
	if pressErr != nil {
		if !errors.Is(pressErr, calculator.ErrDivideByZero) {
			badRequest(c, pressErr)
			return
		}
		s.logger.WithField("key", form.Key).Debug("divide by zero, calculator cleared")
		p.Alert = "Cannot divide by zero."
	}

	c.HTML(http.StatusOK, "index.html.tmpl", p)
}

func badRequest(c *gin.Context, err error) {
	c.String(http.StatusBadRequest, err.Error())
	_ = c.AbortWithError(http.StatusBadRequest, err)
}

func getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type cacheInfo struct {
	Name string   `json:"name"`
	URLs []string `json:"urls"`
}

func (s *Server) getCache(c *gin.Context) {
	caches := []cacheInfo{}
	for _, name := range s.storage.Names() {
		caches = append(caches, cacheInfo{Name: name, URLs: s.storage.Open(name).Keys()})
	}
	c.IndentedJSON(http.StatusOK, caches)
}
