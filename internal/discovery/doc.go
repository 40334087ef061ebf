// Package discovery finds logobrief intake servers on the local network
// using multicast DNS.
//
// logobrief-server registers itself as a "_logobrief._tcp" service with TXT
// records describing the briefs route and server version:
//
//	_ = discovery.Advertise(ctx, discovery.Advertisement{Port: 8080, Version: version.Version})
//
// Clients browse for those registrations:
//
//	services, err := discovery.NewScanner().Scan(ctx)
//	for _, svc := range services {
//	    fmt.Println(svc, svc.URL())
//	}
//
// The questionnaire uses Scanner.First to pick an endpoint automatically when
// discovery is enabled and none is configured.
package discovery
