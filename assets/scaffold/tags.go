// Package scaffold implements the scaffold command stream: the tagged,
// variable-length record format that holds the output of the GeoProc
// pipeline, and the machines (transformation, model, skeleton, material,
// scaffold top-level) that are built from it.
package scaffold

// Tag identifies the kind of a single command-stream record. Namespaces
// are reserved in disjoint numeric ranges so that a reader can always
// tell which machine a tag belongs to without additional context.
type Tag uint32

const (
	transformBase Tag = 0x500
	modelBase     Tag = 0x1000
	skeletonBase  Tag = 0x1500
	animationBase Tag = 0x1700
	materialBase  Tag = 0x2000
	topLevelBase  Tag = 0x2500
	drawableBase  Tag = 0x3000
)

// Transformation machine (0x500..): a linear program whose execution
// produces a set of output transforms, mirroring the source engine's
// TransformCommand enum.
const (
	TransformPushLocalToWorld Tag = transformBase + iota
	TransformPopLocalToWorld
	TransformFloat4x4Static
	TransformTranslateStatic
	TransformRotateXStatic
	TransformRotateYStatic
	TransformRotateZStatic
	TransformRotateAxisAngleStatic
	TransformRotateQuaternionStatic
	TransformUniformScaleStatic
	TransformArbitraryScaleStatic
	TransformFloat4x4Parameter
	TransformTranslateParameter
	TransformRotateXParameter
	TransformRotateYParameter
	TransformRotateZParameter
	TransformRotateAxisAngleParameter
	TransformRotateQuaternionParameter
	TransformUniformScaleParameter
	TransformArbitraryScaleParameter
	TransformBindingPoint0
	TransformWriteOutputMatrix
	TransformComment
)

// Model machine (0x1000..): per-Command state changes and geometry calls.
const (
	ModelSetTransformMarker Tag = modelBase + iota
	ModelSetMaterialAssignments
	ModelSetGroups
	ModelGeoCall
	ModelInputInterface
)

// Skeleton machine (0x1500..): wraps a transformation machine plus joint
// names and a dehash table.
const (
	SkeletonMachine Tag = skeletonBase + iota
	SkeletonJointNames
	SkeletonOutputInterface
)

// Animation set (0x1700..): named clips, each a list of parameter-indexed
// curve drivers, plus the constant driver values no clip ever touches.
const (
	AnimationClip            Tag = animationBase + iota
	AnimationDriverCurve
	AnimationConstantDrivers
)

// Material machine (0x2000..): bindings attached to a resolved material.
const (
	MaterialAttachShaderResourceBindings Tag = materialBase + iota
	MaterialAttachSelectors
	MaterialAttachStateSet
	MaterialAttachConstants
	MaterialAttachSamplerBindings
	MaterialAttachPatchCollectionID
)

// Scaffold top-level (0x2500..): the outer container's named sections.
const (
	TagGeo Tag = topLevelBase + iota
	TagMaterial
	TagSkeleton
	TagShaderPatchCollection
	TagModelCommandStream
	TagMaterialNameDehash
	TagDefaultPoseData
	TagModelRootData
)

// Drawable constructor (0x3000..).
const (
	DrawableConstruct Tag = drawableBase + iota
)
