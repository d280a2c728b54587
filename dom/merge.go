package dom

import "github.com/yamlcore/yamlcore/taglib"

// mergeKeyContent is the plain scalar content that marks a merge key per
// the YAML merge-key type (tag:yaml.org,2002:merge), spec.md §4.7.
const mergeKeyContent = "<<"

// flattenMerges resolves any `<<` entries in n's pair list, per the
// teacher's decode.go (*decoder).merge: the merge value must be a
// Mapping, an Alias resolving to a Mapping, or a Sequence of those: each
// contributes its pairs to n, but only for keys n doesn't already define
// explicitly (explicit keys always win over merged ones, and an earlier
// merge source wins over a later one for the same key).
func flattenMerges(n *Node) error {
	var merges []Pair
	var kept []Pair

	for _, pr := range n.Pairs {
		if isMergeKey(pr.Key) {
			merges = append(merges, pr)
			continue
		}
		kept = append(kept, pr)
	}
	if len(merges) == 0 {
		return nil
	}

	explicit := make(map[string]bool, len(kept))
	for _, pr := range kept {
		if pr.Key.Kind == ScalarNode {
			explicit[pr.Key.Content] = true
		}
	}

	result := kept
	seen := make(map[string]bool, len(explicit))
	for k := range explicit {
		seen[k] = true
	}

	for _, pr := range merges {
		sources, err := mergeSources(pr.Value)
		if err != nil {
			return err
		}
		for _, src := range sources {
			for _, mp := range src.Pairs {
				if mp.Key.Kind != ScalarNode {
					result = append(result, mp)
					continue
				}
				if seen[mp.Key.Content] {
					continue
				}
				seen[mp.Key.Content] = true
				result = append(result, mp)
			}
		}
	}

	n.Pairs = result
	return nil
}

// isMergeKey matches the teacher's isMerge (decode.go): content alone
// isn't enough, since an explicitly-!!str-tagged "<<" is an ordinary
// key, not a merge directive. Node does not record how a scalar was
// quoted, so an untagged quoted "<<" is taken as a merge key.
func isMergeKey(key *Node) bool {
	if key.Kind != ScalarNode || key.Content != mergeKeyContent {
		return false
	}
	return key.Tag == "" || key.Tag == "!" || key.Tag == taglib.MergeURI
}

// mergeSources resolves a merge value to the ordered list of mappings it
// contributes, following aliases and flattening a sequence of mappings.
func mergeSources(value *Node) ([]*Node, error) {
	resolved := resolveAlias(value)

	switch resolved.Kind {
	case MappingNode:
		return []*Node{resolved}, nil
	case SequenceNode:
		var out []*Node
		for _, item := range resolved.Items {
			r := resolveAlias(item)
			if r.Kind != MappingNode {
				return nil, constructionErr("map merge requires map or sequence of maps as the value")
			}
			out = append(out, r)
		}
		return out, nil
	default:
		return nil, constructionErr("map merge requires map or sequence of maps as the value")
	}
}

func resolveAlias(n *Node) *Node {
	for n.Kind == AliasNode {
		n = n.Target
	}
	return n
}
