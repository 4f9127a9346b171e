package middleware

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

var ErrInvalidProxy = errors.New("middleware: invalid trusted proxy")

// ClientIPResolver определяет адрес клиента для лимитеров
// Заголовки X-Forwarded-For и X-Real-IP принимаются только от доверенных прокси,
// иначе клиент мог бы подставить любой адрес и обойти лимит
type ClientIPResolver struct {
	trusted []*net.IPNet
}

// NewClientIPResolver принимает CIDR (10.0.0.0/8) или одиночные адреса доверенных прокси
func NewClientIPResolver(proxies []string) (*ClientIPResolver, error) {
	res := &ClientIPResolver{}
	for _, p := range proxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.Contains(p, "/") {
			ip := net.ParseIP(p)
			if ip == nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidProxy, p)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			res.trusted = append(res.trusted, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, network, err := net.ParseCIDR(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidProxy, p, err)
		}
		res.trusted = append(res.trusted, network)
	}
	return res, nil
}

// ClientIP возвращает адрес соединения, а за доверенным прокси
// ближайший к нам недоверенный адрес из X-Forwarded-For, затем X-Real-IP
func (c *ClientIPResolver) ClientIP(r *http.Request) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		peer = host
	}

	if !c.isTrusted(peer) {
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" || c.isTrusted(hop) {
				continue
			}
			return hop
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return peer
}

func (c *ClientIPResolver) isTrusted(addr string) bool {
	if c == nil {
		return false
	}
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, network := range c.trusted {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
