package dalendar

import (
	"fmt"
	"image/color"
	"net/netip"
	"strings"
	"time"

	"github.com/dalendar/dalendar/internal/wheel"
	"gopkg.in/yaml.v3"
)

// hexColorField remembers whether the value spelled out an alpha channel,
// so that "#003300" can keep the translucency of the color it replaces.
type hexColorField struct {
	color.NRGBA
	hasAlpha bool
}

func (c *hexColorField) UnmarshalYAML(node *yaml.Node) error {
	var value string

	if err := node.Decode(&value); err != nil {
		return err
	}

	parsed, err := wheel.ParseHex(value)
	if err != nil {
		return err
	}

	c.NRGBA = parsed
	c.hasAlpha = len(strings.TrimPrefix(strings.TrimSpace(value), "#")) == 8

	return nil
}

func (c hexColorField) MarshalYAML() (any, error) {
	return wheel.Hex(c.NRGBA), nil
}

// over returns the configured color, taking the alpha of base when none was given.
func (c *hexColorField) over(base color.NRGBA) color.NRGBA {
	if c.hasAlpha {
		return c.NRGBA
	}

	result := c.NRGBA
	result.A = base.A

	return result
}

type timezoneField struct {
	*time.Location
}

func (t *timezoneField) UnmarshalYAML(node *yaml.Node) error {
	var value string

	if err := node.Decode(&value); err != nil {
		return err
	}

	loc, err := time.LoadLocation(value)
	if err != nil {
		return fmt.Errorf("invalid timezone '%s': %v", value, err)
	}

	t.Location = loc

	return nil
}

func (t timezoneField) MarshalYAML() (any, error) {
	if t.Location == nil {
		return wheel.CentralTimezone, nil
	}

	return t.Location.String(), nil
}

type imageFormatField wheel.Format

func (f *imageFormatField) UnmarshalYAML(node *yaml.Node) error {
	var value string

	if err := node.Decode(&value); err != nil {
		return err
	}

	format, err := wheel.ParseFormat(value)
	if err != nil {
		return err
	}

	*f = imageFormatField(format)

	return nil
}

// proxyPrefixField accepts either a single address or a CIDR range.
type proxyPrefixField netip.Prefix

func (p *proxyPrefixField) UnmarshalYAML(node *yaml.Node) error {
	var value string

	if err := node.Decode(&value); err != nil {
		return err
	}

	value = strings.TrimSpace(value)

	if strings.Contains(value, "/") {
		prefix, err := netip.ParsePrefix(value)
		if err != nil {
			return fmt.Errorf("invalid trusted proxy range '%s': %v", value, err)
		}
		*p = proxyPrefixField(prefix.Masked())
		return nil
	}

	addr, err := netip.ParseAddr(value)
	if err != nil {
		return fmt.Errorf("invalid trusted proxy address '%s': %v", value, err)
	}

	addr = addr.Unmap()
	*p = proxyPrefixField(netip.PrefixFrom(addr, addr.BitLen()))

	return nil
}
