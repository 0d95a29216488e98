package census

import (
	"context"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/censuskit/censuskit/constants"
	"github.com/rs/dnscache"
	"golang.org/x/sync/semaphore"
)

// newHTTPClient builds the client used for Census API calls. Go does not
// cache DNS lookups by default, so a multi-year fetch would resolve
// api.census.gov once per year; we employ a DNS lookup cache and limit the
// number of parallel lookups to avoid pressuring the underlying DNS server.
func newHTTPClient(timeout time.Duration) *http.Client {
	dnsLookupMaxParallel := readEnvVarToInt(constants.EnvDNSLookupMaxParallel, 25)

	// The DNS cache will be refreshed at this interval. A refresh means that
	// any unused entries are removed and any entries that were used since the
	// last refresh will be re-looked up to ensure they are current.
	// Set to 0 to disable the refresh completely.
	// Set to -1 to disable the DNS cache completely (the net/http default).
	dnsCacheRefreshIntervalSecs := readEnvVarToInt(constants.EnvDNSCacheRefreshIntervalSecs, 300)

	transport := http.DefaultTransport.(*http.Transport).Clone()

	if dnsCacheRefreshIntervalSecs >= 0 {
		var resolver = &dnscache.Resolver{}
		if dnsCacheRefreshIntervalSecs > 0 {
			go func() {
				t := time.NewTicker(time.Duration(dnsCacheRefreshIntervalSecs) * time.Second)
				defer t.Stop()
				for range t.C {
					resolver.Refresh(true)
				}
			}()
		}

		// A semaphore is used to control the number of parallel DNS lookups.
		sem := semaphore.NewWeighted(int64(dnsLookupMaxParallel))
		dialer := &net.Dialer{}

		transport.DialContext = func(ctx context.Context, network string, addr string) (conn net.Conn, err error) {
			host, port, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}

			// Acquire a semaphore slot, blocking until one is available.
			if err := sem.Acquire(ctx, 1); err != nil {
				return nil, err
			}

			// Actually resolve the host, using a cached result if possible.
			// Returns an array of IPs for the host.
			ips, err := resolver.LookupHost(ctx, host)

			// Release the semaphore, even if there was an error.
			sem.Release(1)

			if err != nil {
				return nil, err
			}

			// Look through the IP addresses until we manage to create a good
			// connection. Less optimal than the parallelized native golang
			// approach, but good enough and much simpler.
			for _, ip := range ips {
				conn, err = dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
				if err == nil {
					break
				}
			}

			return
		}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func readEnvVarToInt(name string, defaultVal int) int {
	val := defaultVal
	envValue := os.Getenv(name)
	if envValue != "" {
		i, err := strconv.Atoi(envValue)
		if err == nil {
			val = i
		}
	}
	return val
}
