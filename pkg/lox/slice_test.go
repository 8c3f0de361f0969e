package lox_test

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"donation_finder/pkg/lox"
)

func TestMap(t *testing.T) {
	rq := require.New(t)

	rq.Equal([]string{"1", "2", "3"}, lox.Map([]int{1, 2, 3}, strconv.Itoa))
	rq.Empty(lox.Map(nil, strconv.Itoa))
}

func TestMapErr(t *testing.T) {
	rq := require.New(t)

	result, err := lox.MapErr([]string{"1", "2"}, strconv.Atoi)
	rq.NoError(err)
	rq.Equal([]int{1, 2}, result)

	_, err = lox.MapErr([]string{"1", "x"}, strconv.Atoi)
	rq.Error(err)

	strResult, err := lox.MapErr(nil, func(s string) (string, error) {
		return "", fmt.Errorf("never called")
	})
	rq.NoError(err)
	rq.Empty(strResult)
}
