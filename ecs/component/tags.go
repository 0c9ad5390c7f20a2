package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()

type SolidTag struct{}

var SolidTagComponent = NewComponent[SolidTag]()
