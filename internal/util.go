package internal

// ReconstructPath walks from current to its root through parent and returns
// the edge labels in root-to-current order.
func ReconstructPath[NodeType any, LabelType any](
	current NodeType,
	parent func(NodeType) (NodeType, bool),
	label func(NodeType) LabelType,
) []LabelType {
	path := []LabelType{}
	for {
		previousNode, exists := parent(current)
		if !exists {
			break
		}
		path = append(path, label(current))
		current = previousNode
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
