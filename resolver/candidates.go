package resolver

import "github.com/ferrodns/resolver/dnsname"

// candidateNames expands qname into the ordered list of names to try,
// per spec.md §4.D. The list is meant to be consumed from the back: the
// last-pushed candidate is tried first.
func candidateNames(qname dnsname.Name, search *bool, cfg *Config) ([]dnsname.Name, error) {
	if qname.IsAbsolute() {
		return []dnsname.Name{qname}, nil
	}

	useSearch := cfg.UseSearchByDefault
	if search != nil {
		useSearch = *search
	}

	var candidates []dnsname.Name

	if qname.Labels() > 1 {
		asAbsolute, err := qname.Concatenate(dnsname.Root)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, asAbsolute)
	}

	if useSearch && len(cfg.Search) > 0 {
		for _, suffix := range cfg.Search {
			if cfg.Ndots != nil && qname.Labels() < *cfg.Ndots {
				continue
			}
			withSuffix, err := qname.Concatenate(suffix)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, withSuffix)
		}
	} else {
		withDomain, err := qname.Concatenate(cfg.Domain)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, withDomain)
	}

	return candidates, nil
}
