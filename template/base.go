package template

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/hellodex/daofin-dashboard/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// formatDate filter, the param is a named format or a Go layout
var _ = func() interface{} {
	pongo2.RegisterFilter("formatDate", func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		formatType := util.FormatStandard
		if !param.IsNil() && param.String() != "" {
			formatType = param.String()
		}
		date := in.Interface()
		if t, ok := date.(time.Time); ok {
			date = t.Unix()
		}
		return pongo2.AsValue(util.FormatDate(date, formatType)), nil
	})
	return nil
}()

// shortenAddress filter
var _ = func() interface{} {
	pongo2.RegisterFilter("shortenAddress", func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsValue(util.ShortenAddress(in.String())), nil
	})
	return nil
}()

// formatEther filter, the param overrides the 18 decimals
var _ = func() interface{} {
	pongo2.RegisterFilter("formatEther", func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		decimals := int32(18)
		if !param.IsNil() {
			decimals = int32(param.Integer())
		}
		var wei decimal.Decimal
		switch v := in.Interface().(type) {
		case decimal.Decimal:
			wei = v
		case *big.Int:
			wei = decimal.NewFromBigInt(v, 0)
		default:
			d, err := decimal.NewFromString(cast.ToString(v))
			if err != nil {
				return pongo2.AsValue(in.String()), nil
			}
			wei = d
		}
		return pongo2.AsValue(util.FormatEther(wei, decimals)), nil
	})
	return nil
}()

var ErrRender = errors.New("render failed")

func render(name, source string, ctx pongo2.Context) (string, error) {
	tpl, err := pongo2.FromString(source)
	if err != nil {
		log.Error().Err(err).Str("template", name).Send()
		return "", fmt.Errorf("%w: %s: %v", ErrRender, name, err)
	}
	out, err := tpl.Execute(ctx)
	if err != nil {
		log.Error().Err(err).Str("template", name).Send()
		return "", fmt.Errorf("%w: %s: %v", ErrRender, name, err)
	}
	return out, nil
}
